// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "offer_find"))

	err := dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "offer_find")
	assert.True(t, dberr.IsNotFound(err))

	err = dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "user_create")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, "user_create", apperr.As(err).Component)

	err = dberr.Wrap(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "comment_user_fkey"}, "comment_insert")
	assert.True(t, dberr.IsNotFound(err))
	assert.Equal(t, "comment_user_fkey", dberr.Constraint(fmt.Errorf("tx: %w", err)))
	assert.Empty(t, dberr.Constraint(dberr.ErrNotFound))

	err = dberr.Wrap(errors.New("broken pipe"), "offer_list")
	assert.True(t, apperr.HasCode(err, apperr.CodeStorage))
	assert.Equal(t, "offer_list", apperr.As(err).Component)
	assert.NotContains(t, err.Error(), "broken pipe")
}
