package schema

// RentalCommentTable represents the 'rental.comment' table
type RentalCommentTable struct {
	Table     string
	ID        string
	Text      string
	Rating    string
	OfferID   string
	UserID    string
	CreatedAt string

	// Foreign-key constraint names
	OfferFK string
	UserFK  string
}

// RentalComment is the schema definition for rental.comment
var RentalComment = RentalCommentTable{
	Table:     "rental.comment",
	ID:        "id",
	Text:      "text",
	Rating:    "rating",
	OfferID:   "offerid",
	UserID:    "userid",
	CreatedAt: "createdat",
	OfferFK:   "comment_offer_fkey",
	UserFK:    "comment_user_fkey",
}

// Columns returns all standard column names
func (t RentalCommentTable) Columns() []string {
	return []string{t.ID, t.Text, t.Rating, t.OfferID, t.UserID, t.CreatedAt}
}
