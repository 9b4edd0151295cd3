package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/surplus/internal/ledger"
	"github.com/roach88/surplus/internal/report"
)

// NewClaimCommand creates the claim command tree.
func NewClaimCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Manage claims",
	}
	cmd.AddCommand(newClaimAddCommand(rootOpts))
	cmd.AddCommand(newClaimUpdateCommand(rootOpts))
	cmd.AddCommand(newClaimDeleteCommand(rootOpts))
	cmd.AddCommand(newClaimListCommand(rootOpts))
	return cmd
}

func claimFlags(cmd *cobra.Command, c *ledger.Claim, status *string) {
	cmd.Flags().Int64Var(&c.ID, "id", 0, "claim id (required)")
	cmd.Flags().Int64Var(&c.FoodID, "food", 0, "food listing id, must exist (required)")
	cmd.Flags().Int64Var(&c.ReceiverID, "receiver", 0, "receiver id, must exist (required)")
	cmd.Flags().StringVar(status, "status", string(ledger.StatusPending), "claim status (Pending|Completed|Cancelled)")
	cmd.Flags().StringVar(&c.Timestamp, "timestamp", "", "claim time YYYY-MM-DD HH:MM:SS (default: now)")
	for _, f := range []string{"id", "food", "receiver"} {
		_ = cmd.MarkFlagRequired(f)
	}
}

func finishClaim(c *ledger.Claim, status string) {
	c.Status = ledger.ClaimStatus(status)
	if c.Timestamp == "" {
		c.Timestamp = time.Now().Format(ledger.TimestampLayout)
	}
}

func newClaimAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		c      ledger.Claim
		status string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a claim",
		Long: `Add a claim against a food listing.

Both the food listing and the receiver must exist; a missing reference
is rejected. Status must be Pending, Completed or Cancelled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			finishClaim(&c, status)

			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			stored, err := st.AddClaim(cmd.Context(), c)
			if err != nil {
				return storeErr("add claim", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(stored)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added claim %d\n", stored.ID)
			return nil
		},
	}
	claimFlags(cmd, &c, &status)
	return cmd
}

func newClaimUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		c      ledger.Claim
		status string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Overwrite a claim's fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			finishClaim(&c, status)

			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.UpdateClaim(cmd.Context(), c)
			if err != nil {
				return storeErr("update claim", err)
			}
			return reportAffected(rootOpts, cmd, "claim", c.ID, n, "updated")
		},
	}
	claimFlags(cmd, &c, &status)
	return cmd
}

func newClaimDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a claim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.DeleteClaim(cmd.Context(), id)
			if err != nil {
				return storeErr("delete claim", err)
			}
			return reportAffected(rootOpts, cmd, "claim", id, n, "deleted")
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "claim id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newClaimListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all claims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			claims, err := st.ListClaims(cmd.Context())
			if err != nil {
				return storeErr("list claims", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(claims)
			}

			t := &report.Table{Columns: []string{"claim_id", "food_id", "receiver_id", "status", "timestamp"}}
			for _, c := range claims {
				t.Rows = append(t.Rows, []string{
					fmt.Sprintf("%d", c.ID), fmt.Sprintf("%d", c.FoodID),
					fmt.Sprintf("%d", c.ReceiverID), string(c.Status), c.Timestamp,
				})
			}
			return t.Render(cmd.OutOrStdout())
		},
	}
}
