// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/validate"
)

/*
TestValidator_Rules runs every rule once on each side of its boundary.
*/
func TestValidator_Rules(t *testing.T) {
	housing := []string{"apartment", "house", "room", "hotel"}

	tests := []struct {
		name    string
		build   func(v *validate.Validator)
		wantErr bool
	}{
		{"required_present", func(v *validate.Validator) { v.Required("name", "Cozy loft") }, false},
		{"required_blank", func(v *validate.Validator) { v.Required("name", "   ") }, true},
		{"length_lower_bound", func(v *validate.Validator) { v.Length("text", "Quiet", 5, 1024) }, false},
		{"length_counts_runes", func(v *validate.Validator) { v.Length("text", "Düsse", 5, 5) }, false},
		{"length_too_short", func(v *validate.Validator) { v.Length("text", "Meh", 5, 1024) }, true},
		{"length_too_long", func(v *validate.Validator) { v.Length("text", strings.Repeat("a", 1025), 5, 1024) }, true},
		{"rating_upper_bound", func(v *validate.Validator) { v.Range("rating", 5, 1, 5) }, false},
		{"rating_zero", func(v *validate.Validator) { v.Range("rating", 0, 1, 5) }, true},
		{"latitude_ok", func(v *validate.Validator) { v.FloatRange("latitude", 48.85661, -90, 90) }, false},
		{"latitude_out", func(v *validate.Validator) { v.FloatRange("latitude", 91, -90, 90) }, true},
		{"email_ok", func(v *validate.Validator) { v.Email("email", "host@sixcities.app") }, false},
		{"email_missing_domain", func(v *validate.Validator) { v.Email("email", "host@") }, true},
		{"housing_known", func(v *validate.Validator) { v.OneOf("type", "hotel", housing...) }, false},
		{"housing_unknown", func(v *validate.Validator) { v.OneOf("type", "castle", housing...) }, true},
		{"amenities_empty", func(v *validate.Validator) { v.NotEmpty("amenities", 0) }, true},
		{"amenities_known", func(v *validate.Validator) {
			v.EachOneOf("amenities", []string{"Fridge", "Towels"}, "Breakfast", "Fridge", "Towels")
		}, false},
		{"amenities_unknown", func(v *validate.Validator) {
			v.EachOneOf("amenities", []string{"Fridge", "Jacuzzi"}, "Breakfast", "Fridge", "Towels")
		}, true},
		{"custom_failed", func(v *validate.Validator) { v.Custom("city", true, "Must be one of: Paris") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.build(v)

			err := v.Err()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
			assert.Len(t, appError.Details, 1)
		})
	}
}

/*
TestValidator_Accumulates keeps every failing field of a comment payload.
*/
func TestValidator_Accumulates(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Length("text", "Bad", 5, 1024).
		Range("rating", 9, 1, 5).
		Required("offer", "").
		Err()

	appError := apperr.As(err)
	require.NotNil(t, appError)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"text", "rating", "offer"}, fields)
	assert.Equal(t, "Must be between 1 and 5", appError.Details[1].Message)
}
