// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"strings"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
	"github.com/taibuivan/sixcities/internal/platform/validate"
	"github.com/taibuivan/sixcities/internal/rental/aggregate"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

// CommentAdder stores a comment together with the offer's derived fields.
// *aggregate.Engine satisfies it.
type CommentAdder interface {
	AddComment(ctx context.Context, comment *aggregate.Comment) error
}

// Service implements comment use cases.
type Service struct {
	repository Repository
	adder      CommentAdder
}

// NewService constructs a new comment [Service].
func NewService(repository Repository, adder CommentAdder) *Service {
	return &Service{repository: repository, adder: adder}
}

// Input is the body of a create request.
type Input struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// List returns the newest [ListLimit] comments of an offer.
func (service *Service) List(context context.Context, offerID string) ([]*Comment, error) {
	return service.repository.ListByOffer(context, offerID, ListLimit)
}

/*
Create validates a review and hands it to the aggregation engine.

Parameters:
  - context: context.Context
  - authorID: string
  - offerID: string
  - input: Input

Returns:
  - *Comment: the stored comment with its author
  - error: VALIDATION_ERROR, NotFound or storage errors
*/
func (service *Service) Create(context context.Context, authorID, offerID string, input Input) (*Comment, error) {
	text := strings.TrimSpace(input.Text)

	validator := &validate.Validator{}
	validator.Length(FieldText, text, TextMinLength, TextMaxLength).
		Range(FieldRating, input.Rating, MinRating, MaxRating)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &aggregate.Comment{
		ID:      uuid.New(),
		Text:    text,
		Rating:  input.Rating,
		OfferID: offerID,
		UserID:  authorID,
	}

	if err := service.adder.AddComment(context, record); err != nil {
		return nil, err
	}

	comment, err := service.repository.FindByID(context, record.ID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment").WithComponent("comment_service")
		}
		return nil, err
	}
	return comment, nil
}
