package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/surplus/internal/ledger"
	"github.com/roach88/surplus/internal/report"
)

// NewListingCommand creates the food-listing command tree.
func NewListingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Manage food listings",
	}
	cmd.AddCommand(newListingAddCommand(rootOpts))
	cmd.AddCommand(newListingUpdateCommand(rootOpts))
	cmd.AddCommand(newListingDeleteCommand(rootOpts))
	cmd.AddCommand(newListingListCommand(rootOpts))
	return cmd
}

func listingFlags(cmd *cobra.Command, l *ledger.FoodListing) {
	cmd.Flags().Int64Var(&l.ID, "id", 0, "food id (required)")
	cmd.Flags().StringVar(&l.FoodName, "name", "", "food name (required)")
	cmd.Flags().Int64Var(&l.Quantity, "quantity", 0, "quantity, must be >= 0 (required)")
	cmd.Flags().StringVar(&l.ExpiryDate, "expiry", "", "expiry date YYYY-MM-DD (required)")
	cmd.Flags().Int64Var(&l.ProviderID, "provider", 0, "provider id, must exist (required)")
	cmd.Flags().StringVar(&l.ProviderType, "provider-type", "", "provider type (required)")
	cmd.Flags().StringVar(&l.Location, "location", "", "pickup location (required)")
	cmd.Flags().StringVar(&l.FoodType, "food-type", "", "food type, e.g. Bakery (required)")
	cmd.Flags().StringVar(&l.MealType, "meal-type", "", "meal type, e.g. Breakfast (required)")
	for _, f := range []string{"id", "name", "quantity", "expiry", "provider", "provider-type", "location", "food-type", "meal-type"} {
		_ = cmd.MarkFlagRequired(f)
	}
}

func newListingAddCommand(rootOpts *RootOptions) *cobra.Command {
	var l ledger.FoodListing
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food listing",
		Long: `Add a food listing.

The provider id must reference an existing provider; a missing
reference is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			stored, err := st.AddFoodListing(cmd.Context(), l)
			if err != nil {
				return storeErr("add listing", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(stored)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added listing %d\n", stored.ID)
			return nil
		},
	}
	listingFlags(cmd, &l)
	return cmd
}

func newListingUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var l ledger.FoodListing
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Overwrite a food listing's fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.UpdateFoodListing(cmd.Context(), l)
			if err != nil {
				return storeErr("update listing", err)
			}
			return reportAffected(rootOpts, cmd, "listing", l.ID, n, "updated")
		},
	}
	listingFlags(cmd, &l)
	return cmd
}

func newListingDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a food listing",
		Long: `Delete a food listing by id.

Rejected if the listing still has claims; delete those first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.DeleteFoodListing(cmd.Context(), id)
			if err != nil {
				return storeErr("delete listing", err)
			}
			return reportAffected(rootOpts, cmd, "listing", id, n, "deleted")
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "food id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newListingListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all food listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			listings, err := st.ListFoodListings(cmd.Context())
			if err != nil {
				return storeErr("list listings", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(listings)
			}

			t := &report.Table{Columns: []string{
				"food_id", "food_name", "quantity", "expiry_date", "provider_id",
				"provider_type", "location", "food_type", "meal_type",
			}}
			for _, l := range listings {
				t.Rows = append(t.Rows, []string{
					fmt.Sprintf("%d", l.ID), l.FoodName, fmt.Sprintf("%d", l.Quantity),
					l.ExpiryDate, fmt.Sprintf("%d", l.ProviderID),
					l.ProviderType, l.Location, l.FoodType, l.MealType,
				})
			}
			return t.Render(cmd.OutOrStdout())
		},
	}
}
