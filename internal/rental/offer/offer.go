// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package offer implements rental listings.

Architecture:

  - Service: listing, creation, partial update, preview upload, premium and
    favorite views. Every mutation checks that the caller owns the offer.
  - Repository: [Repository] on rental.offer in PostgreSQL.
  - Derived fields (rating, comment count) and deletion are delegated to the
    aggregation engine so they stay consistent with comments.
*/
package offer

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// # Enumerations

// City is one of the six supported cities.
type City string

const (
	CityParis      City = "Paris"
	CityCologne    City = "Cologne"
	CityBrussels   City = "Brussels"
	CityAmsterdam  City = "Amsterdam"
	CityHamburg    City = "Hamburg"
	CityDusseldorf City = "Dusseldorf"
)

// Cities lists every supported city.
var Cities = []City{CityParis, CityCologne, CityBrussels, CityAmsterdam, CityHamburg, CityDusseldorf}

var cityFolder = cases.Fold()

// ParseCity resolves a city name regardless of case.
func ParseCity(raw string) (City, bool) {
	folded := cityFolder.String(raw)
	for _, city := range Cities {
		if cityFolder.String(string(city)) == folded {
			return city, true
		}
	}
	return "", false
}

// DisplayCity title-cases a free-form city name for messages.
func DisplayCity(raw string) string {
	return cases.Title(language.English).String(raw)
}

// HousingType is the kind of accommodation.
type HousingType string

const (
	HousingApartment HousingType = "apartment"
	HousingHouse     HousingType = "house"
	HousingRoom      HousingType = "room"
	HousingHotel     HousingType = "hotel"
)

// Amenity is one facility of the fixed amenity set.
type Amenity string

const (
	AmenityBreakfast       Amenity = "Breakfast"
	AmenityAirConditioning Amenity = "Air conditioning"
	AmenityLaptopWorkspace Amenity = "Laptop friendly workspace"
	AmenityBabySeat        Amenity = "Baby seat"
	AmenityWasher          Amenity = "Washer"
	AmenityTowels          Amenity = "Towels"
	AmenityFridge          Amenity = "Fridge"
)

// Amenities lists the fixed amenity set.
var Amenities = []Amenity{
	AmenityBreakfast, AmenityAirConditioning, AmenityLaptopWorkspace,
	AmenityBabySeat, AmenityWasher, AmenityTowels, AmenityFridge,
}

// Coordinates locate the property.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// # Domain Entities

// Host is the public profile of the offer's owner.
type Host struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Type   string `json:"type"`
}

// Offer is a rental listing.
type Offer struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	PublicationDate  time.Time   `json:"publication_date"`
	City             City        `json:"city"`
	PreviewImage     string      `json:"preview_image"`
	PropertyImages   []string    `json:"property_images"`
	Premium          bool        `json:"premium"`
	Rating           float64     `json:"rating"`
	HousingType      HousingType `json:"housing_type"`
	NumberOfRooms    int         `json:"number_of_rooms"`
	NumberOfGuests   int         `json:"number_of_guests"`
	RentalCost       int         `json:"rental_cost"`
	Amenities        []Amenity   `json:"amenities"`
	UserID           string      `json:"user_id"`
	Host             *Host       `json:"host,omitempty"`
	NumberOfComments int         `json:"number_of_comments"`
	Coordinates      Coordinates `json:"coordinates"`
	IsFavorite       bool        `json:"is_favorite"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Summary is the list view of an offer.
type Summary struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	PublicationDate  time.Time   `json:"publication_date"`
	City             City        `json:"city"`
	PreviewImage     string      `json:"preview_image"`
	Premium          bool        `json:"premium"`
	Rating           float64     `json:"rating"`
	HousingType      HousingType `json:"housing_type"`
	RentalCost       int         `json:"rental_cost"`
	NumberOfComments int         `json:"number_of_comments"`
	IsFavorite       bool        `json:"is_favorite"`
}

// Summarize projects an offer onto its list view.
func Summarize(offer *Offer) Summary {
	return Summary{
		ID:               offer.ID,
		Name:             offer.Name,
		PublicationDate:  offer.PublicationDate,
		City:             offer.City,
		PreviewImage:     offer.PreviewImage,
		Premium:          offer.Premium,
		Rating:           offer.Rating,
		HousingType:      offer.HousingType,
		RentalCost:       offer.RentalCost,
		NumberOfComments: offer.NumberOfComments,
		IsFavorite:       offer.IsFavorite,
	}
}

// # Field Identifiers

const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldCity           = "city"
	FieldPreviewImage   = "preview_image"
	FieldPropertyImages = "property_images"
	FieldHousingType    = "housing_type"
	FieldNumberOfRooms  = "number_of_rooms"
	FieldNumberOfGuests = "number_of_guests"
	FieldRentalCost     = "rental_cost"
	FieldAmenities      = "amenities"
	FieldLatitude       = "coordinates.latitude"
	FieldLongitude      = "coordinates.longitude"
	FieldPreview        = "preview"
)
