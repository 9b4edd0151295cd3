package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/surplus/internal/ledger"
	"github.com/roach88/surplus/internal/report"
)

// NewProviderCommand creates the provider command tree.
func NewProviderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage providers",
	}
	cmd.AddCommand(newProviderAddCommand(rootOpts))
	cmd.AddCommand(newProviderUpdateCommand(rootOpts))
	cmd.AddCommand(newProviderDeleteCommand(rootOpts))
	cmd.AddCommand(newProviderListCommand(rootOpts))
	return cmd
}

func providerFlags(cmd *cobra.Command, p *ledger.Provider) {
	cmd.Flags().Int64Var(&p.ID, "id", 0, "provider id (required)")
	cmd.Flags().StringVar(&p.Name, "name", "", "provider name (required)")
	cmd.Flags().StringVar(&p.Type, "type", "", "provider type, e.g. Restaurant (required)")
	cmd.Flags().StringVar(&p.Address, "address", "", "street address (required)")
	cmd.Flags().StringVar(&p.City, "city", "", "city (required)")
	cmd.Flags().StringVar(&p.Contact, "contact", "", "contact info (required)")
	for _, f := range []string{"id", "name", "type", "address", "city", "contact"} {
		_ = cmd.MarkFlagRequired(f)
	}
}

func newProviderAddCommand(rootOpts *RootOptions) *cobra.Command {
	var p ledger.Provider
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			stored, err := st.AddProvider(cmd.Context(), p)
			if err != nil {
				return storeErr("add provider", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(stored)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added provider %d\n", stored.ID)
			return nil
		},
	}
	providerFlags(cmd, &p)
	return cmd
}

func newProviderUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var p ledger.Provider
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Overwrite a provider's fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.UpdateProvider(cmd.Context(), p)
			if err != nil {
				return storeErr("update provider", err)
			}
			return reportAffected(rootOpts, cmd, "provider", p.ID, n, "updated")
		},
	}
	providerFlags(cmd, &p)
	return cmd
}

func newProviderDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a provider",
		Long: `Delete a provider by id.

Rejected if the provider still has food listings; delete those first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.DeleteProvider(cmd.Context(), id)
			if err != nil {
				return storeErr("delete provider", err)
			}
			return reportAffected(rootOpts, cmd, "provider", id, n, "deleted")
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "provider id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newProviderListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			providers, err := st.ListProviders(cmd.Context())
			if err != nil {
				return storeErr("list providers", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(providers)
			}

			t := &report.Table{Columns: []string{"provider_id", "name", "type", "address", "city", "contact"}}
			for _, p := range providers {
				t.Rows = append(t.Rows, []string{
					fmt.Sprintf("%d", p.ID), p.Name, p.Type, p.Address, p.City, p.Contact,
				})
			}
			return t.Render(cmd.OutOrStdout())
		},
	}
}

// reportAffected translates an affected-row count into CLI output.
// Zero rows means the id was not found; that is reported as a domain
// failure, distinct from a storage fault.
func reportAffected(rootOpts *RootOptions, cmd *cobra.Command, entity string, id, n int64, verb string) error {
	if n == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s %d not found", entity, id))
	}
	if rootOpts.Format == "json" {
		return rootOpts.formatter(cmd).Success(map[string]int64{"rows_affected": n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", verb, entity, id)
	return nil
}
