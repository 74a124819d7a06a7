package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	Avatar       string
	Type         string
	PasswordHash string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	Avatar:       "avatar",
	Type:         "type",
	PasswordHash: "passwordhash",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Avatar, t.Type, t.PasswordHash, t.CreatedAt, t.UpdatedAt,
	}
}
