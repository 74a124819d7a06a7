// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package offer

// # Listing Constraints

const (
	NameMinLength        = 10
	NameMaxLength        = 100
	DescriptionMinLength = 20
	DescriptionMaxLength = 1024
	MinRooms             = 1
	MaxRooms             = 8
	MinGuests            = 1
	MaxGuests            = 10
	MinRentalCost        = 100
	MaxRentalCost        = 100000
)

// PremiumLimit caps the premium offers returned per city.
const PremiumLimit = 3

// # Preview Upload

// PreviewContentTypes are the image types accepted for previews.
var PreviewContentTypes = []string{"image/jpeg", "image/png"}

// # Ownership Operations

const (
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationUpload = "upload"
)
