package report_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/surplus/internal/ledger"
	"github.com/roach88/surplus/internal/report"
	"github.com/roach88/surplus/internal/store"
)

func emptyStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(store.DialectSQLite, filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// seededStore builds a fixture with known aggregates:
//
//	providers: Alpha(Restaurant, CityX), Beta(Grocery, CityX), Gamma(Bakery, CityY)
//	receivers: R-One(CityX), R-Two(CityZ)
//	listings:  Bread 10 (Alpha), Rice 30 (Beta), Soup 5 (Alpha), Bagels 8 (Gamma)
//	claims:    6 claims - 3 Completed, 2 Cancelled, 1 Pending
//
// Quantities and counts are chosen so no report has ties.
func seededStore(t *testing.T) *store.Store {
	t.Helper()

	s := emptyStore(t)
	ctx := context.Background()

	providers := []ledger.Provider{
		{ID: 1, Name: "Alpha", Type: "Restaurant", Address: "1 A St", City: "CityX", Contact: "555-0001"},
		{ID: 2, Name: "Beta", Type: "Grocery", Address: "2 B St", City: "CityX", Contact: "555-0002"},
		{ID: 3, Name: "Gamma", Type: "Bakery", Address: "3 C St", City: "CityY", Contact: "555-0003"},
	}
	receivers := []ledger.Receiver{
		{ID: 1, Name: "R-One", Type: "NGO", City: "CityX", Contact: "555-0101"},
		{ID: 2, Name: "R-Two", Type: "Charity", City: "CityZ", Contact: "555-0102"},
	}
	listings := []ledger.FoodListing{
		{ID: 1, FoodName: "Bread", Quantity: 10, ExpiryDate: "2025-06-01", ProviderID: 1, ProviderType: "Restaurant", Location: "Downtown", FoodType: "Bakery", MealType: "Breakfast"},
		{ID: 2, FoodName: "Rice", Quantity: 30, ExpiryDate: "2025-06-02", ProviderID: 2, ProviderType: "Grocery", Location: "Downtown", FoodType: "Staple", MealType: "Lunch"},
		{ID: 3, FoodName: "Soup", Quantity: 5, ExpiryDate: "2025-06-03", ProviderID: 1, ProviderType: "Restaurant", Location: "Uptown", FoodType: "Prepared", MealType: "Dinner"},
		{ID: 4, FoodName: "Bagels", Quantity: 8, ExpiryDate: "2025-06-04", ProviderID: 3, ProviderType: "Bakery", Location: "Downtown", FoodType: "Bakery", MealType: "Breakfast"},
	}
	claims := []ledger.Claim{
		{ID: 1, FoodID: 1, ReceiverID: 1, Status: ledger.StatusCompleted, Timestamp: "2025-06-01 09:00:00"},
		{ID: 2, FoodID: 2, ReceiverID: 2, Status: ledger.StatusCompleted, Timestamp: "2025-06-01 10:00:00"},
		{ID: 3, FoodID: 3, ReceiverID: 1, Status: ledger.StatusPending, Timestamp: "2025-06-01 11:00:00"},
		{ID: 4, FoodID: 2, ReceiverID: 2, Status: ledger.StatusCancelled, Timestamp: "2025-06-01 12:00:00"},
		{ID: 5, FoodID: 2, ReceiverID: 1, Status: ledger.StatusCompleted, Timestamp: "2025-06-01 13:00:00"},
		{ID: 6, FoodID: 1, ReceiverID: 2, Status: ledger.StatusCancelled, Timestamp: "2025-06-01 14:00:00"},
	}

	for _, p := range providers {
		_, err := s.AddProvider(ctx, p)
		require.NoError(t, err)
	}
	for _, r := range receivers {
		_, err := s.AddReceiver(ctx, r)
		require.NoError(t, err)
	}
	for _, l := range listings {
		_, err := s.AddFoodListing(ctx, l)
		require.NoError(t, err)
	}
	for _, c := range claims {
		_, err := s.AddClaim(ctx, c)
		require.NoError(t, err)
	}
	return s
}

func TestCitiesByParticipation(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.CitiesByParticipation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []report.CityActivity{
		{City: "CityX", ProviderCount: 2, ReceiverCount: 1},
		{City: "CityY", ProviderCount: 1, ReceiverCount: 0},
		{City: "CityZ", ProviderCount: 0, ReceiverCount: 1},
	}, got)
}

func TestTopProviderTypeByQuantity(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopProviderTypeByQuantity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ProviderTypeQuantity{ProviderType: "Grocery", TotalQuantity: 30}, got)
}

func TestProviderContactsInCity(t *testing.T) {
	e := report.NewEngine(seededStore(t))
	ctx := context.Background()

	got, err := e.ProviderContactsInCity(ctx, "CityX")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	// Unknown city: empty, not an error.
	got, err = e.ProviderContactsInCity(ctx, "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestTopReceiverByCompletedQuantity(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopReceiverByCompletedQuantity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ReceiverClaimTotal{
		ReceiverName: "R-One", TotalQuantityClaimed: 40, ClaimCount: 2,
	}, got)
}

func TestTotalListedQuantity(t *testing.T) {
	s := seededStore(t)
	e := report.NewEngine(s)
	ctx := context.Background()

	got, err := e.TotalListedQuantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(53), got)

	// Cross-check against the listings themselves: each row counts once.
	listings, err := s.ListFoodListings(ctx)
	require.NoError(t, err)
	var sum int64
	for _, l := range listings {
		sum += l.Quantity
	}
	assert.Equal(t, sum, got)
}

func TestTopLocationByListings(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopLocationByListings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.LocationCount{Location: "Downtown", ListingCount: 3}, got)
}

func TestMostCommonFoodType(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.MostCommonFoodType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.FoodTypeCount{FoodType: "Bakery", Count: 2}, got)
}

func TestClaimCountsPerFood(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.ClaimCountsPerFood(context.Background())
	require.NoError(t, err)
	// Ascending by claim count; Bagels has no claims but still appears.
	assert.Equal(t, []report.FoodClaimCount{
		{FoodName: "Bagels", ClaimCount: 0},
		{FoodName: "Soup", ClaimCount: 1},
		{FoodName: "Bread", ClaimCount: 2},
		{FoodName: "Rice", ClaimCount: 3},
	}, got)
}

func TestTopProviderTypeByCompletedClaims(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopProviderTypeByCompletedClaims(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ProviderTypeClaims{ProviderType: "Grocery", CompletedClaimCount: 2}, got)
}

func TestClaimStatusPercentages(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.ClaimStatusPercentages(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Completed", got[0].Status)
	assert.InDelta(t, 50.0, got[0].Percentage, 0.01)
	assert.Equal(t, "Cancelled", got[1].Status)
	assert.InDelta(t, 33.33, got[1].Percentage, 0.01)
	assert.Equal(t, "Pending", got[2].Status)
	assert.InDelta(t, 16.67, got[2].Percentage, 0.01)

	// Shares cover the whole claim population.
	var total float64
	for _, p := range got {
		total += p.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.01)
}

func TestAverageQuantityPerReceiver(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.AverageQuantityPerReceiver(context.Background())
	require.NoError(t, err)
	// 115 claimed quantity across 2 distinct receivers.
	assert.InDelta(t, 57.5, got, 0.001)
}

func TestTopMealTypeByCompletedClaims(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopMealTypeByCompletedClaims(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.MealTypeCount{MealType: "Lunch", ClaimCount: 2}, got)
}

func TestDonationTotalsPerProvider(t *testing.T) {
	s := seededStore(t)
	e := report.NewEngine(s)
	ctx := context.Background()

	got, err := e.DonationTotalsPerProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, []report.ProviderDonation{
		{ProviderID: 2, ProviderName: "Beta", TotalQuantity: 30},
		{ProviderID: 1, ProviderName: "Alpha", TotalQuantity: 15},
		{ProviderID: 3, ProviderName: "Gamma", TotalQuantity: 8},
	}, got)

	// Providers with no listings show up with a zero total.
	_, err = s.AddProvider(ctx, ledger.Provider{
		ID: 4, Name: "Delta", Type: "Cafe", Address: "4 D St", City: "CityY", Contact: "555-0004",
	})
	require.NoError(t, err)

	got, err = e.DonationTotalsPerProvider(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, report.ProviderDonation{ProviderID: 4, ProviderName: "Delta", TotalQuantity: 0}, got[3])
}

func TestTopFoodByQuantity(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopFoodByQuantity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.FoodQuantity{FoodName: "Rice", TotalQuantity: 30, FoodType: "Staple"}, got)
}

func TestTopClaimStatus(t *testing.T) {
	e := report.NewEngine(seededStore(t))

	got, err := e.TopClaimStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.StatusCount{Status: "Completed", Count: 3}, got)
}

func TestEmptyDatabase(t *testing.T) {
	e := report.NewEngine(emptyStore(t))
	ctx := context.Background()

	t.Run("single-row reports fail with empty dataset", func(t *testing.T) {
		_, err := e.TopProviderTypeByQuantity(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.TopReceiverByCompletedQuantity(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.TopLocationByListings(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.MostCommonFoodType(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.TopProviderTypeByCompletedClaims(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.AverageQuantityPerReceiver(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.TopMealTypeByCompletedClaims(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.TopFoodByQuantity(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)

		_, err = e.TopClaimStatus(ctx)
		assert.ErrorIs(t, err, report.ErrEmptyDataset)
	})

	t.Run("multi-row reports return empty sets", func(t *testing.T) {
		cities, err := e.CitiesByParticipation(ctx)
		require.NoError(t, err)
		assert.Empty(t, cities)

		foods, err := e.ClaimCountsPerFood(ctx)
		require.NoError(t, err)
		assert.Empty(t, foods)

		statuses, err := e.ClaimStatusPercentages(ctx)
		require.NoError(t, err)
		assert.Empty(t, statuses)

		donations, err := e.DonationTotalsPerProvider(ctx)
		require.NoError(t, err)
		assert.Empty(t, donations)
	})

	t.Run("total quantity is zero", func(t *testing.T) {
		total, err := e.TotalListedQuantity(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestRun_AllReports(t *testing.T) {
	e := report.NewEngine(seededStore(t))
	ctx := context.Background()

	for _, spec := range report.Catalog() {
		t.Run(spec.Name, func(t *testing.T) {
			table, err := e.Run(ctx, spec.Name, "CityX")
			require.NoError(t, err)
			require.NotNil(t, table)
			assert.NotEmpty(t, table.Columns)
			assert.NotEmpty(t, table.Rows)
			for _, row := range table.Rows {
				assert.Len(t, row, len(table.Columns))
			}
		})
	}
}

func TestRun_ColumnContracts(t *testing.T) {
	e := report.NewEngine(seededStore(t))
	ctx := context.Background()

	tests := map[string][]string{
		"cities-by-participation":               {"city", "provider_count", "receiver_count"},
		"top-provider-type-by-quantity":         {"provider_type", "total_quantity"},
		"provider-contacts":                     {"provider_id", "name", "type", "address", "city", "contact"},
		"top-receiver-by-completed-quantity":    {"receiver_name", "total_quantity_claimed", "claim_count"},
		"total-listed-quantity":                 {"total_quantity"},
		"top-location-by-listings":              {"location", "listing_count"},
		"most-common-food-type":                 {"food_type", "count"},
		"claims-per-food":                       {"food_name", "claim_count"},
		"top-provider-type-by-completed-claims": {"provider_type", "completed_claim_count"},
		"claim-status-percentages":              {"status", "percentage"},
		"average-quantity-per-receiver":         {"average_quantity"},
		"top-meal-type-completed":               {"meal_type", "claim_count"},
		"donations-per-provider":                {"provider_id", "provider_name", "total_quantity"},
		"top-food-by-quantity":                  {"food_name", "total_quantity", "food_type"},
		"top-claim-status":                      {"status", "count"},
	}
	for name, columns := range tests {
		table, err := e.Run(ctx, name, "CityX")
		require.NoError(t, err, name)
		assert.Equal(t, columns, table.Columns, name)
	}
}

func TestRun_UnknownReport(t *testing.T) {
	e := report.NewEngine(emptyStore(t))

	_, err := e.Run(context.Background(), "nonexistent", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, report.ErrEmptyDataset))
}

func TestCatalog_LookupAndOrder(t *testing.T) {
	catalog := report.Catalog()
	require.Len(t, catalog, 15)

	for _, spec := range catalog {
		found, ok := report.Lookup(spec.Name)
		require.True(t, ok, spec.Name)
		assert.Equal(t, spec, found)
	}

	_, ok := report.Lookup("bogus")
	assert.False(t, ok)

	// Only provider-contacts is parameterized.
	for _, spec := range catalog {
		assert.Equal(t, spec.Name == "provider-contacts", spec.NeedsCity, spec.Name)
	}
}

func TestReports_ReadOnly(t *testing.T) {
	s := seededStore(t)
	e := report.NewEngine(s)
	ctx := context.Background()

	for _, spec := range report.Catalog() {
		_, err := e.Run(ctx, spec.Name, "CityX")
		require.NoError(t, err)
	}

	claims, err := s.ListClaims(ctx)
	require.NoError(t, err)
	assert.Len(t, claims, 6)
	listings, err := s.ListFoodListings(ctx)
	require.NoError(t, err)
	assert.Len(t, listings, 4)
}
