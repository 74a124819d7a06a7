package schema

// RentalFavoriteTable represents the 'rental.favorite' table
type RentalFavoriteTable struct {
	Table     string
	UserID    string
	OfferID   string
	CreatedAt string

	// Foreign-key constraint names
	OfferFK string
	UserFK  string
}

// RentalFavorite is the schema definition for rental.favorite
var RentalFavorite = RentalFavoriteTable{
	Table:     "rental.favorite",
	UserID:    "userid",
	OfferID:   "offerid",
	CreatedAt: "createdat",
	OfferFK:   "favorite_offer_fkey",
	UserFK:    "favorite_user_fkey",
}
