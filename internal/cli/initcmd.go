package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the ledger tables",
		Long: `Ensure the four ledger tables exist in the configured database.

Idempotent: running init against an already-initialized database is a
no-op. Every other command also ensures the schema on startup, so init
exists mainly to verify connectivity and privileges up front.

Examples:
  surplus init --db ./surplus.db
  surplus init --driver mysql --db 'user:pass@tcp(localhost:3306)/surplus'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(map[string]string{"schema": "ready"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
}
