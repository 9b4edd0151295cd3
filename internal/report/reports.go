package report

import (
	"context"
	"database/sql"

	"github.com/roach88/surplus/internal/ledger"
)

// CityActivity counts providers and receivers registered in one city.
type CityActivity struct {
	City          string
	ProviderCount int64
	ReceiverCount int64
}

// CitiesByParticipation reports provider and receiver counts per city.
// Cities appearing in either table are included; ordered by
// provider count descending.
func (e *Engine) CitiesByParticipation(ctx context.Context) ([]CityActivity, error) {
	out := []CityActivity{}
	err := e.query(ctx, "cities-by-participation", `
		SELECT city, SUM(providers) AS provider_count, SUM(receivers) AS receiver_count
		FROM (
			SELECT city, COUNT(*) AS providers, 0 AS receivers FROM providers GROUP BY city
			UNION ALL
			SELECT city, 0, COUNT(*) FROM receivers GROUP BY city
		) AS cities
		GROUP BY city
		ORDER BY provider_count DESC
	`, func(rows *sql.Rows) error {
		var c CityActivity
		if err := rows.Scan(&c.City, &c.ProviderCount, &c.ReceiverCount); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// ProviderTypeQuantity is a provider type with its total listed quantity.
type ProviderTypeQuantity struct {
	ProviderType  string
	TotalQuantity int64
}

// TopProviderTypeByQuantity reports the provider type contributing the
// most listed quantity.
func (e *Engine) TopProviderTypeByQuantity(ctx context.Context) (ProviderTypeQuantity, error) {
	var r ProviderTypeQuantity
	err := e.queryOne(ctx, "top-provider-type-by-quantity", `
		SELECT provider_type, SUM(quantity) AS total_quantity
		FROM food_listings
		GROUP BY provider_type
		ORDER BY total_quantity DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.ProviderType, &r.TotalQuantity)
	})
	return r, err
}

// ProviderContactsInCity reports contact info for every provider in the
// given city.
func (e *Engine) ProviderContactsInCity(ctx context.Context, city string) ([]ledger.Provider, error) {
	out := []ledger.Provider{}
	err := e.query(ctx, "provider-contacts", `
		SELECT provider_id, name, type, address, city, contact
		FROM providers
		WHERE city = ?
		ORDER BY provider_id ASC
	`, func(rows *sql.Rows) error {
		var p ledger.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.City, &p.Contact); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}, city)
	return out, err
}

// ReceiverClaimTotal is a receiver with its completed-claim totals.
type ReceiverClaimTotal struct {
	ReceiverName         string
	TotalQuantityClaimed int64
	ClaimCount           int64
}

// TopReceiverByCompletedQuantity reports the receiver whose completed
// claims cover the most quantity.
func (e *Engine) TopReceiverByCompletedQuantity(ctx context.Context) (ReceiverClaimTotal, error) {
	var r ReceiverClaimTotal
	err := e.queryOne(ctx, "top-receiver-by-completed-quantity", `
		SELECT r.name, SUM(f.quantity) AS total_quantity_claimed, COUNT(c.claim_id) AS claim_count
		FROM claims c
		JOIN receivers r ON c.receiver_id = r.receiver_id
		JOIN food_listings f ON c.food_id = f.food_id
		WHERE c.status = 'Completed'
		GROUP BY r.receiver_id, r.name
		ORDER BY total_quantity_claimed DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.ReceiverName, &r.TotalQuantityClaimed, &r.ClaimCount)
	})
	return r, err
}

// TotalListedQuantity reports the sum of quantity over all food listings.
// Each listing row counts exactly once; an empty table
// yields 0.
func (e *Engine) TotalListedQuantity(ctx context.Context) (int64, error) {
	var total int64
	err := e.queryOne(ctx, "total-listed-quantity", `
		SELECT COALESCE(SUM(quantity), 0) FROM food_listings
	`, func(rows *sql.Rows) error {
		return rows.Scan(&total)
	})
	return total, err
}

// LocationCount is a location with its number of distinct listings.
type LocationCount struct {
	Location     string
	ListingCount int64
}

// TopLocationByListings reports the location with the most distinct food
// listings.
func (e *Engine) TopLocationByListings(ctx context.Context) (LocationCount, error) {
	var r LocationCount
	err := e.queryOne(ctx, "top-location-by-listings", `
		SELECT location, COUNT(DISTINCT food_id) AS listing_count
		FROM food_listings
		GROUP BY location
		ORDER BY listing_count DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.Location, &r.ListingCount)
	})
	return r, err
}

// FoodTypeCount is a food type with its number of distinct listings.
type FoodTypeCount struct {
	FoodType string
	Count    int64
}

// MostCommonFoodType reports the food type with the most distinct
// listings.
func (e *Engine) MostCommonFoodType(ctx context.Context) (FoodTypeCount, error) {
	var r FoodTypeCount
	err := e.queryOne(ctx, "most-common-food-type", `
		SELECT food_type, COUNT(DISTINCT food_id) AS count
		FROM food_listings
		GROUP BY food_type
		ORDER BY count DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.FoodType, &r.Count)
	})
	return r, err
}

// FoodClaimCount is a food name with its claim count.
type FoodClaimCount struct {
	FoodName   string
	ClaimCount int64
}

// ClaimCountsPerFood reports the claim count for every food name,
// ascending by count. Foods with no claims are included with
// a count of zero.
func (e *Engine) ClaimCountsPerFood(ctx context.Context) ([]FoodClaimCount, error) {
	out := []FoodClaimCount{}
	err := e.query(ctx, "claims-per-food", `
		SELECT f.food_name, COUNT(c.claim_id) AS claim_count
		FROM food_listings f
		LEFT JOIN claims c ON c.food_id = f.food_id
		GROUP BY f.food_name
		ORDER BY claim_count ASC
	`, func(rows *sql.Rows) error {
		var f FoodClaimCount
		if err := rows.Scan(&f.FoodName, &f.ClaimCount); err != nil {
			return err
		}
		out = append(out, f)
		return nil
	})
	return out, err
}

// ProviderTypeClaims is a provider type with its completed-claim count.
type ProviderTypeClaims struct {
	ProviderType        string
	CompletedClaimCount int64
}

// TopProviderTypeByCompletedClaims reports the provider type with the
// most completed claims.
func (e *Engine) TopProviderTypeByCompletedClaims(ctx context.Context) (ProviderTypeClaims, error) {
	var r ProviderTypeClaims
	err := e.queryOne(ctx, "top-provider-type-by-completed-claims", `
		SELECT f.provider_type, COUNT(*) AS completed_claim_count
		FROM claims c
		JOIN food_listings f ON c.food_id = f.food_id
		WHERE c.status = 'Completed'
		GROUP BY f.provider_type
		ORDER BY completed_claim_count DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.ProviderType, &r.CompletedClaimCount)
	})
	return r, err
}

// StatusPercentage is a claim status with its share of all claims.
type StatusPercentage struct {
	Status     string
	Percentage float64
}

// ClaimStatusPercentages reports the percentage of claims per status.
// With an empty claims table the result set is empty; the
// grouped query never divides by zero because no group exists.
func (e *Engine) ClaimStatusPercentages(ctx context.Context) ([]StatusPercentage, error) {
	out := []StatusPercentage{}
	err := e.query(ctx, "claim-status-percentages", `
		SELECT status, 100.0 * COUNT(*) / (SELECT COUNT(*) FROM claims) AS percentage
		FROM claims
		GROUP BY status
		ORDER BY percentage DESC
	`, func(rows *sql.Rows) error {
		var s StatusPercentage
		if err := rows.Scan(&s.Status, &s.Percentage); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// AverageQuantityPerReceiver reports sum of claimed quantity divided by
// the number of distinct claiming receivers.
// Fails with ErrEmptyDataset when no claims exist.
func (e *Engine) AverageQuantityPerReceiver(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := e.queryOne(ctx, "average-quantity-per-receiver", `
		SELECT 1.0 * SUM(f.quantity) / COUNT(DISTINCT c.receiver_id) AS average_quantity
		FROM claims c
		JOIN food_listings f ON c.food_id = f.food_id
	`, func(rows *sql.Rows) error {
		return rows.Scan(&avg)
	})
	if err != nil {
		return 0, err
	}
	// The aggregate query yields one row even over empty tables; NULL
	// means nothing was claimed.
	if !avg.Valid {
		return 0, ErrEmptyDataset
	}
	return avg.Float64, nil
}

// MealTypeCount is a meal type with its completed-claim count.
type MealTypeCount struct {
	MealType   string
	ClaimCount int64
}

// TopMealTypeByCompletedClaims reports the meal type claimed most, over
// completed claims only.
func (e *Engine) TopMealTypeByCompletedClaims(ctx context.Context) (MealTypeCount, error) {
	var r MealTypeCount
	err := e.queryOne(ctx, "top-meal-type-completed", `
		SELECT f.meal_type, COUNT(*) AS claim_count
		FROM claims c
		JOIN food_listings f ON c.food_id = f.food_id
		WHERE c.status = 'Completed'
		GROUP BY f.meal_type
		ORDER BY claim_count DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.MealType, &r.ClaimCount)
	})
	return r, err
}

// ProviderDonation is a provider with its total donated quantity.
type ProviderDonation struct {
	ProviderID    int64
	ProviderName  string
	TotalQuantity int64
}

// DonationTotalsPerProvider reports the total quantity donated by every
// provider, including providers with no listings.
func (e *Engine) DonationTotalsPerProvider(ctx context.Context) ([]ProviderDonation, error) {
	out := []ProviderDonation{}
	err := e.query(ctx, "donations-per-provider", `
		SELECT p.provider_id, p.name, COALESCE(SUM(f.quantity), 0) AS total_quantity
		FROM providers p
		LEFT JOIN food_listings f ON f.provider_id = p.provider_id
		GROUP BY p.provider_id, p.name
		ORDER BY total_quantity DESC
	`, func(rows *sql.Rows) error {
		var d ProviderDonation
		if err := rows.Scan(&d.ProviderID, &d.ProviderName, &d.TotalQuantity); err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	return out, err
}

// FoodQuantity is a (food name, food type) pair with its total quantity.
type FoodQuantity struct {
	FoodName      string
	TotalQuantity int64
	FoodType      string
}

// TopFoodByQuantity reports the (food_name, food_type) pair with the
// highest total listed quantity.
func (e *Engine) TopFoodByQuantity(ctx context.Context) (FoodQuantity, error) {
	var r FoodQuantity
	err := e.queryOne(ctx, "top-food-by-quantity", `
		SELECT food_name, SUM(quantity) AS total_quantity, food_type
		FROM food_listings
		GROUP BY food_name, food_type
		ORDER BY total_quantity DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.FoodName, &r.TotalQuantity, &r.FoodType)
	})
	return r, err
}

// StatusCount is a claim status with its claim count.
type StatusCount struct {
	Status string
	Count  int64
}

// TopClaimStatus reports the status carrying the most claims.
func (e *Engine) TopClaimStatus(ctx context.Context) (StatusCount, error) {
	var r StatusCount
	err := e.queryOne(ctx, "top-claim-status", `
		SELECT status, COUNT(*) AS count
		FROM claims
		GROUP BY status
		ORDER BY count DESC
		LIMIT 1
	`, func(rows *sql.Rows) error {
		return rows.Scan(&r.Status, &r.Count)
	})
	return r, err
}
