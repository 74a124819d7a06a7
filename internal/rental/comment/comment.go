// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements offer reviews.
//
// Writes go through the aggregation engine so that the offer's rating and
// comment count move together with the comment rows.
package comment

import "time"

// # Domain Entities

// Author is the public profile of a comment's writer.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Type   string `json:"type"`
}

// Comment is a review left on an offer.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	OfferID   string    `json:"offer_id"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// # Constraints

const (
	TextMinLength = 5
	TextMaxLength = 1024
	MinRating     = 1
	MaxRating     = 5

	// ListLimit caps the comments returned for one offer.
	ListLimit = 50
)

// # Field Identifiers

const (
	FieldText   = "text"
	FieldRating = "rating"
)
