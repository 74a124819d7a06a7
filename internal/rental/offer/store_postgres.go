// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package offer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sixcities/internal/platform/database/schema"
	"github.com/taibuivan/sixcities/internal/platform/dberr"
	"github.com/taibuivan/sixcities/pkg/slice"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] on rental.offer.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewRepository constructs a PostgreSQL backed offer store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var offerColumns = strings.Join(schema.RentalOffer.Columns(), ", ")

// selectOffers is the projection shared by every read: all offer columns,
// the host profile and the caller's favorite flag ($1, NULL when anonymous).
var selectOffers = fmt.Sprintf(`
	SELECT
		%s,
		u.%s, u.%s, u.%s, u.%s,
		EXISTS (
			SELECT 1 FROM %s f WHERE f.%s = o.%s AND f.%s = $1
		) AS isfavorite
	FROM %s o
	JOIN %s u ON u.%s = o.%s
`,
	"o."+strings.Join(schema.RentalOffer.Columns(), ", o."),
	schema.UsersAccount.Name, schema.UsersAccount.Email, schema.UsersAccount.Avatar, schema.UsersAccount.Type,
	schema.RentalFavorite.Table, schema.RentalFavorite.OfferID, schema.RentalOffer.ID, schema.RentalFavorite.UserID,
	schema.RentalOffer.Table,
	schema.UsersAccount.Table, schema.UsersAccount.ID, schema.RentalOffer.UserID,
)

// Exists reports whether an offer with the given id exists.
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.RentalOffer.Table, schema.RentalOffer.ID)

	var found bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, "postgres_offer_repo_exists")
	}
	return found, nil
}

// FindByID loads one offer with its host.
func (repository *PostgresRepository) FindByID(context context.Context, id, viewerID string) (*Offer, error) {
	query := selectOffers + fmt.Sprintf(` WHERE o.%s = $2`, schema.RentalOffer.ID)

	offer, err := scanOffer(repository.pool.QueryRow(context, query, nullable(viewerID), id))
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_offer_repo_find_by_id")
	}
	return offer, nil
}

/*
List returns one page of offers, newest publication first.

Parameters:
  - context: context.Context
  - viewerID: string ("" for anonymous)
  - limit: int
  - offset: int

Returns:
  - []*Offer
  - error: storage errors
*/
func (repository *PostgresRepository) List(context context.Context, viewerID string, limit, offset int) ([]*Offer, error) {
	query := selectOffers + fmt.Sprintf(` ORDER BY o.%s DESC, o.%s DESC LIMIT $2 OFFSET $3`,
		schema.RentalOffer.PublicationDate, schema.RentalOffer.ID)

	rows, err := repository.pool.Query(context, query, nullable(viewerID), limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_offer_repo_list")
	}
	return collectOffers(rows, "postgres_offer_repo_list")
}

// Count returns the total number of offers.
func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.RentalOffer.Table)

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "postgres_offer_repo_count")
	}
	return total, nil
}

// ListPremium returns up to limit premium offers in city, newest first.
func (repository *PostgresRepository) ListPremium(context context.Context, city City, viewerID string, limit int) ([]*Offer, error) {
	query := selectOffers + fmt.Sprintf(` WHERE o.%s = $2 AND o.%s ORDER BY o.%s DESC LIMIT $3`,
		schema.RentalOffer.City, schema.RentalOffer.Premium, schema.RentalOffer.PublicationDate)

	rows, err := repository.pool.Query(context, query, nullable(viewerID), string(city), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_offer_repo_list_premium")
	}
	return collectOffers(rows, "postgres_offer_repo_list_premium")
}

// ListByIDs loads the given offers, preserving the order of ids.
func (repository *PostgresRepository) ListByIDs(context context.Context, ids []string, viewerID string) ([]*Offer, error) {
	if len(ids) == 0 {
		return []*Offer{}, nil
	}

	query := selectOffers + fmt.Sprintf(` WHERE o.%s = ANY($2::uuid[]) ORDER BY array_position($2::uuid[], o.%s)`,
		schema.RentalOffer.ID, schema.RentalOffer.ID)

	rows, err := repository.pool.Query(context, query, nullable(viewerID), ids)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_offer_repo_list_by_ids")
	}
	return collectOffers(rows, "postgres_offer_repo_list_by_ids")
}

/*
Create inserts a new offer. Rating and comment count start at zero.

Returns:
  - error: dberr.ErrNotFound if the owner does not exist, storage errors
*/
func (repository *PostgresRepository) Create(context context.Context, offer *Offer) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
	)`, schema.RentalOffer.Table, offerColumns)

	now := time.Now().UTC()
	if offer.PublicationDate.IsZero() {
		offer.PublicationDate = now
	}
	offer.CreatedAt = now
	offer.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		offer.ID,
		offer.Name,
		offer.Description,
		offer.PublicationDate,
		string(offer.City),
		offer.PreviewImage,
		offer.PropertyImages,
		offer.Premium,
		offer.Rating,
		string(offer.HousingType),
		offer.NumberOfRooms,
		offer.NumberOfGuests,
		offer.RentalCost,
		amenityStrings(offer.Amenities),
		offer.UserID,
		offer.NumberOfComments,
		offer.Coordinates.Latitude,
		offer.Coordinates.Longitude,
		offer.CreatedAt,
		offer.UpdatedAt,
	)
	return dberr.Wrap(err, "postgres_offer_repo_create")
}

/*
Update writes the owner-editable columns of an offer.

Description: rating and numberofcomments are owned by the aggregation
engine and are never written here.
*/
func (repository *PostgresRepository) Update(context context.Context, offer *Offer) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13,
			%s = $14, %s = $15
		WHERE %s = $1
	`,
		schema.RentalOffer.Table,
		schema.RentalOffer.Name, schema.RentalOffer.Description, schema.RentalOffer.City,
		schema.RentalOffer.PreviewImage, schema.RentalOffer.PropertyImages, schema.RentalOffer.Premium,
		schema.RentalOffer.HousingType, schema.RentalOffer.NumberOfRooms, schema.RentalOffer.NumberOfGuests,
		schema.RentalOffer.RentalCost, schema.RentalOffer.Amenities, schema.RentalOffer.Latitude,
		schema.RentalOffer.Longitude, schema.RentalOffer.UpdatedAt,
		schema.RentalOffer.ID,
	)

	offer.UpdatedAt = time.Now().UTC()

	tag, err := repository.pool.Exec(context, query,
		offer.ID,
		offer.Name,
		offer.Description,
		string(offer.City),
		offer.PreviewImage,
		offer.PropertyImages,
		offer.Premium,
		string(offer.HousingType),
		offer.NumberOfRooms,
		offer.NumberOfGuests,
		offer.RentalCost,
		amenityStrings(offer.Amenities),
		offer.Coordinates.Latitude,
		offer.Coordinates.Longitude,
		offer.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_offer_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// UpdatePreview replaces the preview image path.
func (repository *PostgresRepository) UpdatePreview(context context.Context, id, preview string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.RentalOffer.Table,
		schema.RentalOffer.PreviewImage,
		schema.RentalOffer.UpdatedAt,
		schema.RentalOffer.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, preview, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "postgres_offer_repo_update_preview")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Scanning

func scanOffer(row pgx.Row) (*Offer, error) {
	var (
		offer     Offer
		host      Host
		city      string
		housing   string
		amenities []string
	)

	err := row.Scan(
		&offer.ID,
		&offer.Name,
		&offer.Description,
		&offer.PublicationDate,
		&city,
		&offer.PreviewImage,
		&offer.PropertyImages,
		&offer.Premium,
		&offer.Rating,
		&housing,
		&offer.NumberOfRooms,
		&offer.NumberOfGuests,
		&offer.RentalCost,
		&amenities,
		&offer.UserID,
		&offer.NumberOfComments,
		&offer.Coordinates.Latitude,
		&offer.Coordinates.Longitude,
		&offer.CreatedAt,
		&offer.UpdatedAt,
		&host.Name,
		&host.Email,
		&host.Avatar,
		&host.Type,
		&offer.IsFavorite,
	)
	if err != nil {
		return nil, err
	}

	offer.City = City(city)
	offer.HousingType = HousingType(housing)
	offer.Amenities = slice.Map(amenities, func(raw string) Amenity { return Amenity(raw) })
	host.ID = offer.UserID
	offer.Host = &host

	return &offer, nil
}

func collectOffers(rows pgx.Rows, action string) ([]*Offer, error) {
	defer rows.Close()

	offers := []*Offer{}
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return offers, nil
}

func amenityStrings(amenities []Amenity) []string {
	return slice.Map(amenities, func(amenity Amenity) string { return string(amenity) })
}

// nullable maps an anonymous viewer to SQL NULL so no favorite matches.
func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}
