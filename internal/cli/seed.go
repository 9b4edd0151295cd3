package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/roach88/surplus/internal/ledger"
	"github.com/roach88/surplus/internal/store"
)

// SeedFile is a YAML fixture holding records for every entity.
// Records are inserted in referential order: providers, receivers,
// listings, then claims, so a fixture never trips over its own foreign
// keys.
type SeedFile struct {
	Providers []ledger.Provider    `yaml:"providers"`
	Receivers []ledger.Receiver    `yaml:"receivers"`
	Listings  []ledger.FoodListing `yaml:"listings"`
	Claims    []ledger.Claim       `yaml:"claims"`
}

// SeedSummary reports how many rows each table gained.
type SeedSummary struct {
	Providers int `json:"providers"`
	Receivers int `json:"receivers"`
	Listings  int `json:"listings"`
	Claims    int `json:"claims"`
}

// LoadSeedFile reads and parses a YAML seed fixture.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Apply inserts every record in the fixture. Fails fast on the first
// invalid or conflicting record; records inserted before the failure
// remain (each insert is an independent single-statement operation).
func (f *SeedFile) Apply(cmd *cobra.Command, st *store.Store, log *zap.Logger) (SeedSummary, error) {
	ctx := cmd.Context()
	var sum SeedSummary

	for _, p := range f.Providers {
		if _, err := st.AddProvider(ctx, p); err != nil {
			return sum, fmt.Errorf("seed provider %d: %w", p.ID, err)
		}
		sum.Providers++
	}
	for _, r := range f.Receivers {
		if _, err := st.AddReceiver(ctx, r); err != nil {
			return sum, fmt.Errorf("seed receiver %d: %w", r.ID, err)
		}
		sum.Receivers++
	}
	for _, l := range f.Listings {
		if _, err := st.AddFoodListing(ctx, l); err != nil {
			return sum, fmt.Errorf("seed listing %d: %w", l.ID, err)
		}
		sum.Listings++
	}
	for _, c := range f.Claims {
		if _, err := st.AddClaim(ctx, c); err != nil {
			return sum, fmt.Errorf("seed claim %d: %w", c.ID, err)
		}
		sum.Claims++
	}

	log.Debug("seed applied",
		zap.Int("providers", sum.Providers),
		zap.Int("receivers", sum.Receivers),
		zap.Int("listings", sum.Listings),
		zap.Int("claims", sum.Claims),
	)
	return sum, nil
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load a YAML fixture into the ledger",
		Long: `Load providers, receivers, listings and claims from a YAML fixture.

Example fixture:

  providers:
    - {id: 1, name: "Greenway Deli", type: "Restaurant", address: "1 Main St", city: "Austin", contact: "555-0100"}
  receivers:
    - {id: 1, name: "City Shelter", type: "NGO", city: "Austin", contact: "555-0200"}
  listings:
    - {id: 1, food_name: "Bread", quantity: 10, expiry_date: "2025-01-01", provider_id: 1,
       provider_type: "Restaurant", location: "Downtown", food_type: "Bakery", meal_type: "Breakfast"}
  claims:
    - {id: 1, food_id: 1, receiver_id: 1, status: "Completed", timestamp: "2025-01-01 10:00:00"}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := LoadSeedFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load seed file", err)
			}

			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			sum, err := seed.Apply(cmd, st, rootOpts.Logger)
			if err != nil {
				return storeErr("seed", err)
			}

			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(sum)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d providers, %d receivers, %d listings, %d claims\n",
				sum.Providers, sum.Receivers, sum.Listings, sum.Claims)
			return nil
		},
	}
}
