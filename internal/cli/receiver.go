package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/surplus/internal/ledger"
	"github.com/roach88/surplus/internal/report"
)

// NewReceiverCommand creates the receiver command tree.
func NewReceiverCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receiver",
		Short: "Manage receivers",
	}
	cmd.AddCommand(newReceiverAddCommand(rootOpts))
	cmd.AddCommand(newReceiverUpdateCommand(rootOpts))
	cmd.AddCommand(newReceiverDeleteCommand(rootOpts))
	cmd.AddCommand(newReceiverListCommand(rootOpts))
	return cmd
}

func receiverFlags(cmd *cobra.Command, r *ledger.Receiver) {
	cmd.Flags().Int64Var(&r.ID, "id", 0, "receiver id (required)")
	cmd.Flags().StringVar(&r.Name, "name", "", "receiver name (required)")
	cmd.Flags().StringVar(&r.Type, "type", "", "receiver type, e.g. NGO (required)")
	cmd.Flags().StringVar(&r.City, "city", "", "city (required)")
	cmd.Flags().StringVar(&r.Contact, "contact", "", "contact info (required)")
	for _, f := range []string{"id", "name", "type", "city", "contact"} {
		_ = cmd.MarkFlagRequired(f)
	}
}

func newReceiverAddCommand(rootOpts *RootOptions) *cobra.Command {
	var r ledger.Receiver
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a receiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			stored, err := st.AddReceiver(cmd.Context(), r)
			if err != nil {
				return storeErr("add receiver", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(stored)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added receiver %d\n", stored.ID)
			return nil
		},
	}
	receiverFlags(cmd, &r)
	return cmd
}

func newReceiverUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var r ledger.Receiver
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Overwrite a receiver's fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.UpdateReceiver(cmd.Context(), r)
			if err != nil {
				return storeErr("update receiver", err)
			}
			return reportAffected(rootOpts, cmd, "receiver", r.ID, n, "updated")
		},
	}
	receiverFlags(cmd, &r)
	return cmd
}

func newReceiverDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a receiver",
		Long: `Delete a receiver by id.

Rejected if the receiver still has claims; delete those first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.DeleteReceiver(cmd.Context(), id)
			if err != nil {
				return storeErr("delete receiver", err)
			}
			return reportAffected(rootOpts, cmd, "receiver", id, n, "deleted")
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "receiver id (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newReceiverListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all receivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			receivers, err := st.ListReceivers(cmd.Context())
			if err != nil {
				return storeErr("list receivers", err)
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(receivers)
			}

			t := &report.Table{Columns: []string{"receiver_id", "name", "type", "city", "contact"}}
			for _, r := range receivers {
				t.Rows = append(t.Rows, []string{
					fmt.Sprintf("%d", r.ID), r.Name, r.Type, r.City, r.Contact,
				})
			}
			return t.Render(cmd.OutOrStdout())
		},
	}
}
