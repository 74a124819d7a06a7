// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package offer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
	"github.com/taibuivan/sixcities/internal/platform/pipeline"
	"github.com/taibuivan/sixcities/internal/platform/validate"
	"github.com/taibuivan/sixcities/pkg/pagination"
	"github.com/taibuivan/sixcities/pkg/pointer"
	"github.com/taibuivan/sixcities/pkg/slice"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

// # Contracts & Types

// Aggregator owns deletion and the favorite set. *aggregate.Engine satisfies it.
type Aggregator interface {
	DeleteOffer(ctx context.Context, offerID string) error
	AddFavorite(ctx context.Context, userID, offerID string) error
	RemoveFavorite(ctx context.Context, userID, offerID string) error
	Favorites(ctx context.Context, userID string) ([]string, error)
}

// Service implements offer use cases.
type Service struct {
	repository Repository
	aggregator Aggregator
}

var _ pipeline.ExistenceChecker = (*Service)(nil)

// NewService constructs a new offer [Service].
func NewService(repository Repository, aggregator Aggregator) *Service {
	return &Service{repository: repository, aggregator: aggregator}
}

// # Payloads

// Input is the body of a create request.
type Input struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	City           string      `json:"city"`
	PreviewImage   string      `json:"preview_image"`
	PropertyImages []string    `json:"property_images"`
	Premium        bool        `json:"premium"`
	HousingType    HousingType `json:"housing_type"`
	NumberOfRooms  int         `json:"number_of_rooms"`
	NumberOfGuests int         `json:"number_of_guests"`
	RentalCost     int         `json:"rental_cost"`
	Amenities      []Amenity   `json:"amenities"`
	Coordinates    Coordinates `json:"coordinates"`
}

// Patch is the body of a partial update. Nil fields are left unchanged.
type Patch struct {
	Name           *string      `json:"name"`
	Description    *string      `json:"description"`
	City           *string      `json:"city"`
	PreviewImage   *string      `json:"preview_image"`
	PropertyImages *[]string    `json:"property_images"`
	Premium        *bool        `json:"premium"`
	HousingType    *HousingType `json:"housing_type"`
	NumberOfRooms  *int         `json:"number_of_rooms"`
	NumberOfGuests *int         `json:"number_of_guests"`
	RentalCost     *int         `json:"rental_cost"`
	Amenities      *[]Amenity   `json:"amenities"`
	Coordinates    *Coordinates `json:"coordinates"`
}

// # Queries

// Exists implements [pipeline.ExistenceChecker] for offer ids.
func (service *Service) Exists(context context.Context, id string) (bool, error) {
	return service.repository.Exists(context, id)
}

/*
List returns one page of offer summaries and the total count.

Description: The page and the count are fetched concurrently.

Parameters:
  - ctx: context.Context
  - viewerID: string ("" for anonymous)
  - params: pagination.Params

Returns:
  - []Summary
  - int: total number of offers
  - error: storage errors
*/
func (service *Service) List(ctx context.Context, viewerID string, params pagination.Params) ([]Summary, int, error) {
	var (
		offers []*Offer
		total  int
	)

	err := pipeline.Go(ctx,
		func(taskCtx context.Context) (err error) {
			offers, err = service.repository.List(taskCtx, viewerID, params.Limit, params.Offset())
			return err
		},
		func(taskCtx context.Context) (err error) {
			total, err = service.repository.Count(taskCtx)
			return err
		},
	)
	if err != nil {
		return nil, 0, err
	}

	return slice.Map(offers, Summarize), total, nil
}

// Get returns one offer with its host.
func (service *Service) Get(context context.Context, id, viewerID string) (*Offer, error) {
	offer, err := service.repository.FindByID(context, id, viewerID)
	if err != nil {
		return nil, notFound(err, id)
	}
	return offer, nil
}

// Premium returns up to [PremiumLimit] premium offers of a city.
func (service *Service) Premium(context context.Context, rawCity, viewerID string) ([]Summary, error) {
	city, ok := ParseCity(rawCity)
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("%s is not a supported city", DisplayCity(rawCity))).WithComponent("offer_service")
	}

	offers, err := service.repository.ListPremium(context, city, viewerID, PremiumLimit)
	if err != nil {
		return nil, err
	}
	return slice.Map(offers, Summarize), nil
}

// Favorites returns the caller's favorite offers, most recently added first.
func (service *Service) Favorites(context context.Context, userID string) ([]Summary, error) {
	ids, err := service.aggregator.Favorites(context, userID)
	if err != nil {
		return nil, err
	}

	offers, err := service.repository.ListByIDs(context, ids, userID)
	if err != nil {
		return nil, err
	}
	return slice.Map(offers, Summarize), nil
}

// # Commands

/*
Create validates and stores a new offer owned by ownerID.

Returns:
  - *Offer: the stored offer
  - error: VALIDATION_ERROR or storage errors
*/
func (service *Service) Create(context context.Context, ownerID string, input Input) (*Offer, error) {
	city, cityOK := ParseCity(input.City)

	offer := &Offer{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		City:           city,
		PreviewImage:   input.PreviewImage,
		PropertyImages: emptyIfNil(input.PropertyImages),
		Premium:        input.Premium,
		HousingType:    input.HousingType,
		NumberOfRooms:  input.NumberOfRooms,
		NumberOfGuests: input.NumberOfGuests,
		RentalCost:     input.RentalCost,
		Amenities:      input.Amenities,
		UserID:         ownerID,
		Coordinates:    input.Coordinates,
	}

	if err := validateOffer(offer, cityOK); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, offer); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Unauthorized").WithComponent("offer_service")
		}
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "offer_created", slog.String("offer_id", offer.ID))
	return service.Get(context, offer.ID, ownerID)
}

/*
Update applies a partial update on behalf of callerID.

Returns:
  - *Offer: the updated offer
  - error: Forbidden if callerID does not own the offer, VALIDATION_ERROR,
    NotFound or storage errors
*/
func (service *Service) Update(context context.Context, callerID, id string, patch Patch) (*Offer, error) {
	offer, err := service.owned(context, callerID, id, OperationUpdate)
	if err != nil {
		return nil, err
	}

	cityOK := true
	if patch.City != nil {
		offer.City, cityOK = ParseCity(*patch.City)
	}

	offer.Name = strings.TrimSpace(pointer.Fallback(patch.Name, offer.Name))
	offer.Description = strings.TrimSpace(pointer.Fallback(patch.Description, offer.Description))
	offer.PreviewImage = pointer.Fallback(patch.PreviewImage, offer.PreviewImage)
	offer.PropertyImages = emptyIfNil(pointer.Fallback(patch.PropertyImages, offer.PropertyImages))
	offer.Premium = pointer.Fallback(patch.Premium, offer.Premium)
	offer.HousingType = pointer.Fallback(patch.HousingType, offer.HousingType)
	offer.NumberOfRooms = pointer.Fallback(patch.NumberOfRooms, offer.NumberOfRooms)
	offer.NumberOfGuests = pointer.Fallback(patch.NumberOfGuests, offer.NumberOfGuests)
	offer.RentalCost = pointer.Fallback(patch.RentalCost, offer.RentalCost)
	offer.Amenities = pointer.Fallback(patch.Amenities, offer.Amenities)
	offer.Coordinates = pointer.Fallback(patch.Coordinates, offer.Coordinates)

	if err := validateOffer(offer, cityOK); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, offer); err != nil {
		return nil, notFound(err, id)
	}

	ctxutil.GetLogger(context).InfoContext(context, "offer_updated", slog.String("offer_id", id))
	return service.Get(context, id, callerID)
}

// Delete removes the offer and its comments on behalf of callerID.
func (service *Service) Delete(context context.Context, callerID, id string) error {
	if _, err := service.owned(context, callerID, id, OperationDelete); err != nil {
		return err
	}
	return service.aggregator.DeleteOffer(context, id)
}

// UpdatePreview stores a new preview image path on behalf of callerID.
func (service *Service) UpdatePreview(context context.Context, callerID, id, preview string) (*Offer, error) {
	if _, err := service.owned(context, callerID, id, OperationUpload); err != nil {
		return nil, err
	}

	if err := service.repository.UpdatePreview(context, id, preview); err != nil {
		return nil, notFound(err, id)
	}
	return service.Get(context, id, callerID)
}

// AddFavorite puts the offer into the caller's favorite set.
func (service *Service) AddFavorite(context context.Context, userID, offerID string) error {
	return service.aggregator.AddFavorite(context, userID, offerID)
}

// RemoveFavorite takes the offer out of the caller's favorite set.
func (service *Service) RemoveFavorite(context context.Context, userID, offerID string) error {
	return service.aggregator.RemoveFavorite(context, userID, offerID)
}

// # Helpers

// owned loads an offer and checks that callerID may perform operation on it.
func (service *Service) owned(context context.Context, callerID, id, operation string) (*Offer, error) {
	offer, err := service.repository.FindByID(context, id, callerID)
	if err != nil {
		return nil, notFound(err, id)
	}

	if offer.UserID != callerID {
		return nil, apperr.Forbidden(fmt.Sprintf("Offer %s does not belong to you, %s is not allowed", id, operation)).
			WithComponent("offer_ownership")
	}
	return offer, nil
}

func validateOffer(offer *Offer, cityOK bool) error {
	cities := slice.Map(Cities, func(city City) string { return string(city) })
	amenities := slice.Map(offer.Amenities, func(amenity Amenity) string { return string(amenity) })
	allowedAmenities := slice.Map(Amenities, func(amenity Amenity) string { return string(amenity) })

	validator := &validate.Validator{}
	validator.Length(FieldName, offer.Name, NameMinLength, NameMaxLength).
		Length(FieldDescription, offer.Description, DescriptionMinLength, DescriptionMaxLength).
		Custom(FieldCity, !cityOK, "Must be one of: "+strings.Join(cities, ", ")).
		Required(FieldPreviewImage, offer.PreviewImage).
		OneOf(FieldHousingType, string(offer.HousingType),
			string(HousingApartment), string(HousingHouse), string(HousingRoom), string(HousingHotel)).
		Range(FieldNumberOfRooms, offer.NumberOfRooms, MinRooms, MaxRooms).
		Range(FieldNumberOfGuests, offer.NumberOfGuests, MinGuests, MaxGuests).
		Range(FieldRentalCost, offer.RentalCost, MinRentalCost, MaxRentalCost).
		NotEmpty(FieldAmenities, len(amenities)).
		EachOneOf(FieldAmenities, amenities, allowedAmenities...).
		FloatRange(FieldLatitude, offer.Coordinates.Latitude, -90, 90).
		FloatRange(FieldLongitude, offer.Coordinates.Longitude, -180, 180)

	for _, image := range offer.PropertyImages {
		validator.Custom(FieldPropertyImages, strings.TrimSpace(image) == "", "Image path must not be empty")
	}
	return validator.Err()
}

func notFound(err error, id string) error {
	if dberr.IsNotFound(err) {
		return apperr.DocumentNotFound("Offer", id).WithComponent("offer_service")
	}
	return err
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
