package report

import (
	"context"
	"fmt"
)

// Spec describes one report in the catalog.
type Spec struct {
	// Name is the identifier a caller invokes the report by.
	Name string

	// Description is a one-line summary for catalog listings.
	Description string

	// NeedsCity marks reports parameterized by a city name.
	NeedsCity bool
}

// Catalog lists the fifteen reports in their canonical order.
func Catalog() []Spec {
	return []Spec{
		{Name: "cities-by-participation", Description: "Providers and receivers count per city"},
		{Name: "top-provider-type-by-quantity", Description: "Provider type contributing the most quantity"},
		{Name: "provider-contacts", Description: "Provider contact info in a given city", NeedsCity: true},
		{Name: "top-receiver-by-completed-quantity", Description: "Receiver with the highest completed-claim quantity"},
		{Name: "total-listed-quantity", Description: "Total quantity across all listings"},
		{Name: "top-location-by-listings", Description: "Location with the most distinct listings"},
		{Name: "most-common-food-type", Description: "Most common food type"},
		{Name: "claims-per-food", Description: "Claim count per food name"},
		{Name: "top-provider-type-by-completed-claims", Description: "Provider type with the most completed claims"},
		{Name: "claim-status-percentages", Description: "Claim status distribution as percentages"},
		{Name: "average-quantity-per-receiver", Description: "Average quantity claimed per receiver"},
		{Name: "top-meal-type-completed", Description: "Meal type claimed most among completed claims"},
		{Name: "donations-per-provider", Description: "Total quantity donated per provider"},
		{Name: "top-food-by-quantity", Description: "Most-provided food by quantity"},
		{Name: "top-claim-status", Description: "Status with the most claims"},
	}
}

// Lookup finds a report spec by name.
func Lookup(name string) (Spec, bool) {
	for _, spec := range Catalog() {
		if spec.Name == name {
			return spec, true
		}
	}
	return Spec{}, false
}

// Run executes the named report and returns its result as a table whose
// column names match the report contract verbatim.
func (e *Engine) Run(ctx context.Context, name, city string) (*Table, error) {
	switch name {
	case "cities-by-participation":
		rows, err := e.CitiesByParticipation(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"city", "provider_count", "receiver_count"}}
		for _, r := range rows {
			t.addRow(r.City, formatInt(r.ProviderCount), formatInt(r.ReceiverCount))
		}
		return t, nil

	case "top-provider-type-by-quantity":
		r, err := e.TopProviderTypeByQuantity(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"provider_type", "total_quantity"}}
		t.addRow(r.ProviderType, formatInt(r.TotalQuantity))
		return t, nil

	case "provider-contacts":
		rows, err := e.ProviderContactsInCity(ctx, city)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"provider_id", "name", "type", "address", "city", "contact"}}
		for _, p := range rows {
			t.addRow(formatInt(p.ID), p.Name, p.Type, p.Address, p.City, p.Contact)
		}
		return t, nil

	case "top-receiver-by-completed-quantity":
		r, err := e.TopReceiverByCompletedQuantity(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"receiver_name", "total_quantity_claimed", "claim_count"}}
		t.addRow(r.ReceiverName, formatInt(r.TotalQuantityClaimed), formatInt(r.ClaimCount))
		return t, nil

	case "total-listed-quantity":
		total, err := e.TotalListedQuantity(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"total_quantity"}}
		t.addRow(formatInt(total))
		return t, nil

	case "top-location-by-listings":
		r, err := e.TopLocationByListings(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"location", "listing_count"}}
		t.addRow(r.Location, formatInt(r.ListingCount))
		return t, nil

	case "most-common-food-type":
		r, err := e.MostCommonFoodType(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"food_type", "count"}}
		t.addRow(r.FoodType, formatInt(r.Count))
		return t, nil

	case "claims-per-food":
		rows, err := e.ClaimCountsPerFood(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"food_name", "claim_count"}}
		for _, r := range rows {
			t.addRow(r.FoodName, formatInt(r.ClaimCount))
		}
		return t, nil

	case "top-provider-type-by-completed-claims":
		r, err := e.TopProviderTypeByCompletedClaims(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"provider_type", "completed_claim_count"}}
		t.addRow(r.ProviderType, formatInt(r.CompletedClaimCount))
		return t, nil

	case "claim-status-percentages":
		rows, err := e.ClaimStatusPercentages(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"status", "percentage"}}
		for _, r := range rows {
			t.addRow(r.Status, formatFloat(r.Percentage))
		}
		return t, nil

	case "average-quantity-per-receiver":
		avg, err := e.AverageQuantityPerReceiver(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"average_quantity"}}
		t.addRow(formatFloat(avg))
		return t, nil

	case "top-meal-type-completed":
		r, err := e.TopMealTypeByCompletedClaims(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"meal_type", "claim_count"}}
		t.addRow(r.MealType, formatInt(r.ClaimCount))
		return t, nil

	case "donations-per-provider":
		rows, err := e.DonationTotalsPerProvider(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"provider_id", "provider_name", "total_quantity"}}
		for _, r := range rows {
			t.addRow(formatInt(r.ProviderID), r.ProviderName, formatInt(r.TotalQuantity))
		}
		return t, nil

	case "top-food-by-quantity":
		r, err := e.TopFoodByQuantity(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"food_name", "total_quantity", "food_type"}}
		t.addRow(r.FoodName, formatInt(r.TotalQuantity), r.FoodType)
		return t, nil

	case "top-claim-status":
		r, err := e.TopClaimStatus(ctx)
		if err != nil {
			return nil, err
		}
		t := &Table{Columns: []string{"status", "count"}}
		t.addRow(r.Status, formatInt(r.Count))
		return t, nil
	}

	return nil, fmt.Errorf("unknown report %q", name)
}
