package schema

// RentalOfferTable represents the 'rental.offer' table
type RentalOfferTable struct {
	Table            string
	ID               string
	Name             string
	Description      string
	PublicationDate  string
	City             string
	PreviewImage     string
	PropertyImages   string
	Premium          string
	Rating           string
	HousingType      string
	NumberOfRooms    string
	NumberOfGuests   string
	RentalCost       string
	Amenities        string
	UserID           string
	NumberOfComments string
	Latitude         string
	Longitude        string
	CreatedAt        string
	UpdatedAt        string
}

// RentalOffer is the schema definition for rental.offer
var RentalOffer = RentalOfferTable{
	Table:            "rental.offer",
	ID:               "id",
	Name:             "name",
	Description:      "description",
	PublicationDate:  "publicationdate",
	City:             "city",
	PreviewImage:     "previewimage",
	PropertyImages:   "propertyimages",
	Premium:          "premium",
	Rating:           "rating",
	HousingType:      "housingtype",
	NumberOfRooms:    "numberofrooms",
	NumberOfGuests:   "numberofguests",
	RentalCost:       "rentalcost",
	Amenities:        "amenities",
	UserID:           "userid",
	NumberOfComments: "numberofcomments",
	Latitude:         "latitude",
	Longitude:        "longitude",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names
func (t RentalOfferTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Description, t.PublicationDate, t.City, t.PreviewImage,
		t.PropertyImages, t.Premium, t.Rating, t.HousingType, t.NumberOfRooms,
		t.NumberOfGuests, t.RentalCost, t.Amenities, t.UserID, t.NumberOfComments,
		t.Latitude, t.Longitude, t.CreatedAt, t.UpdatedAt,
	}
}
