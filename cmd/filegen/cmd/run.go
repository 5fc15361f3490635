package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/billingfiles/internal/batch"
	"github.com/MrJamesThe3rd/billingfiles/internal/transfer"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create invoice files from approved billing records",
	Long: `Runs every configured creator for the municipality. Records that cannot be
written are reported and stay APPROVED; the command fails only when a creator could
not produce its file at all.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer generated invoice files",
	Long:  `Sends every GENERATED or SEND_FAILED file of the municipality and records the outcome.`,
	Args:  cobra.NoArgs,
	RunE:  runTransfer,
}

func init() {
	rootCmd.AddCommand(createCmd, transferCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	svc, municipalityID, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.CreateFiles(cmd.Context(), municipalityID)
	printCreateResult(cmd.OutOrStdout(), result)

	return err
}

func runTransfer(cmd *cobra.Command, _ []string) error {
	svc, municipalityID, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Transfer(cmd.Context(), municipalityID)
	printTransferResult(cmd.OutOrStdout(), result)

	return err
}

func printCreateResult(w io.Writer, r *batch.Result) {
	if r == nil {
		return
	}

	fmt.Fprintf(w, "Files created: %d\n", len(r.Files))

	for _, f := range r.Files {
		fmt.Fprintf(w, "  %s\t%d bytes\n", f.Name, len(f.Content))
	}

	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintf(w, "Errors: %d\n", len(r.Errors))

	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func printTransferResult(w io.Writer, r *transfer.Result) {
	if r == nil {
		return
	}

	fmt.Fprintf(w, "Files sent: %d\n", len(r.Sent))

	for _, name := range r.Sent {
		fmt.Fprintf(w, "  %s\n", name)
	}

	if len(r.Failed) == 0 {
		return
	}

	fmt.Fprintf(w, "Files failed: %d\n", len(r.Failed))

	for _, name := range r.Failed {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
