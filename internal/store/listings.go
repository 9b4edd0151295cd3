package store

import (
	"context"

	"github.com/roach88/surplus/internal/ledger"
)

// AddFoodListing inserts a new food listing row.
// Fails with a DUPLICATE_KEY error on a primary-key collision and with a
// FOREIGN_KEY error when the referenced provider does not exist.
func (s *Store) AddFoodListing(ctx context.Context, l ledger.FoodListing) (ledger.FoodListing, error) {
	if err := l.Validate(); err != nil {
		return ledger.FoodListing{}, err
	}
	l = l.Normalized()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO food_listings
		(food_id, food_name, quantity, expiry_date, provider_id, provider_type, location, food_type, meal_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.FoodName, l.Quantity, l.ExpiryDate, l.ProviderID, l.ProviderType, l.Location, l.FoodType, l.MealType)
	if err != nil {
		return ledger.FoodListing{}, classify(s.dialect, "add food listing", err)
	}

	return l, nil
}

// UpdateFoodListing overwrites all mutable fields of the listing
// identified by l.ID. Returns the number of rows affected; 0 means not
// found. Repointing provider_id at a missing provider fails with a
// FOREIGN_KEY error.
func (s *Store) UpdateFoodListing(ctx context.Context, l ledger.FoodListing) (int64, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}
	l = l.Normalized()

	res, err := s.db.ExecContext(ctx, `
		UPDATE food_listings
		SET food_name = ?, quantity = ?, expiry_date = ?, provider_id = ?,
		    provider_type = ?, location = ?, food_type = ?, meal_type = ?
		WHERE food_id = ?
	`, l.FoodName, l.Quantity, l.ExpiryDate, l.ProviderID, l.ProviderType, l.Location, l.FoodType, l.MealType, l.ID)
	if err != nil {
		return 0, classify(s.dialect, "update food listing", err)
	}

	return rowsAffected(res, "update food listing")
}

// DeleteFoodListing removes the listing row. Deleting a listing that
// still has claims is rejected with a FOREIGN_KEY error.
func (s *Store) DeleteFoodListing(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM food_listings WHERE food_id = ?
	`, id)
	if err != nil {
		return 0, classify(s.dialect, "delete food listing", err)
	}

	return rowsAffected(res, "delete food listing")
}

// ListFoodListings returns all listing rows ordered by ID.
func (s *Store) ListFoodListings(ctx context.Context) ([]ledger.FoodListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT food_id, food_name, quantity, expiry_date, provider_id,
		       provider_type, location, food_type, meal_type
		FROM food_listings
		ORDER BY food_id ASC
	`)
	if err != nil {
		return nil, classify(s.dialect, "list food listings", err)
	}
	defer rows.Close()

	listings := []ledger.FoodListing{}
	for rows.Next() {
		var l ledger.FoodListing
		if err := rows.Scan(&l.ID, &l.FoodName, &l.Quantity, &l.ExpiryDate, &l.ProviderID,
			&l.ProviderType, &l.Location, &l.FoodType, &l.MealType); err != nil {
			return nil, classify(s.dialect, "scan food listing", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(s.dialect, "iterate food listings", err)
	}

	return listings, nil
}
