package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/surplus/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Driver  string // "sqlite" | "mysql"
	DB      string // path (sqlite) or DSN (mysql)
	Format  string // "json" | "text"
	Verbose bool

	Logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the surplus CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "surplus",
		Short: "Surplus - food donation coordination ledger",
		Long: `Surplus tracks donated food: providers list surplus batches,
receivers claim them, and fifteen fixed reports answer aggregate
questions over the resulting ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := store.ParseDialect(opts.Driver); err != nil {
				return err
			}
			opts.Logger = zap.NewNop()
			if opts.Verbose {
				opts.Logger = zap.Must(zap.NewDevelopment())
			}
			return nil
		},
	}

	// Global flags; environment supplies defaults so a .env file can
	// pin the database per checkout.
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", envOr("SURPLUS_DRIVER", "sqlite"), "database driver (sqlite|mysql)")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", envOr("SURPLUS_DB", "surplus.db"), "database path (sqlite) or DSN (mysql)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewProviderCommand(opts))
	cmd.AddCommand(NewReceiverCommand(opts))
	cmd.AddCommand(NewListingCommand(opts))
	cmd.AddCommand(NewClaimCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore connects to the configured database and ensures the schema.
func openStore(opts *RootOptions) (*store.Store, error) {
	dialect, err := store.ParseDialect(opts.Driver)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid driver", err)
	}

	st, err := store.Open(dialect, opts.DB, store.WithLogger(opts.Logger))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// storeErr maps a record-store error to an exit code: storage faults are
// command errors, data conflicts are domain failures.
func storeErr(message string, err error) error {
	if store.IsConnection(err) {
		return WrapExitError(ExitCommandError, message, err)
	}
	return WrapExitError(ExitFailure, message, err)
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
