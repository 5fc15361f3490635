package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrJamesThe3rd/billingfiles/internal/encoding"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the invoice files of a municipality",
	Args:  cobra.NoArgs,
	RunE:  runFiles,
}

var contentCmd = &cobra.Command{
	Use:   "content <id>",
	Short: "Print the content of an invoice file",
	Long: `Prints the file decoded to UTF-8. With --raw the stored bytes are written
unchanged, in the charset the file was created with.`,
	Args: cobra.ExactArgs(1),
	RunE: runContent,
}

func init() {
	rootCmd.AddCommand(filesCmd, contentCmd)

	filesCmd.Flags().String("status", "", "comma separated statuses to list (GENERATED, SEND_SUCCESSFUL, SEND_FAILED)")
	contentCmd.Flags().Bool("raw", false, "write the stored bytes without decoding")

	_ = viper.BindPFlag("status", filesCmd.Flags().Lookup("status"))
}

func runFiles(cmd *cobra.Command, _ []string) error {
	statuses, err := invoicefile.ParseStatuses(viper.GetString("status"))
	if err != nil {
		return err
	}

	svc, municipalityID, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	files, err := svc.ListFiles(cmd.Context(), invoicefile.ListFilter{MunicipalityID: municipalityID, Statuses: statuses})
	if err != nil {
		return err
	}

	return printFiles(cmd.OutOrStdout(), files)
}

func printFiles(w io.Writer, files []*invoicefile.File) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTATUS\tCREATED\tSENT")

	for _, f := range files {
		sent := "-"
		if f.Sent != nil {
			sent = f.Sent.Format("2006-01-02 15:04")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.Name, f.Type, f.Status, f.Created.Format("2006-01-02 15:04"), sent)
	}

	return tw.Flush()
}

func runContent(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid file id: %w", err)
	}

	raw, _ := cmd.Flags().GetBool("raw")

	svc, municipalityID, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	f, err := svc.GetFile(cmd.Context(), id)
	if err != nil {
		return err
	}

	if f.MunicipalityID != municipalityID {
		return invoicefile.ErrNotFound
	}

	return writeContent(cmd.OutOrStdout(), f, raw)
}

func writeContent(w io.Writer, f *invoicefile.File, raw bool) error {
	if raw {
		_, err := w.Write(f.Content)
		return err
	}

	text, err := encoding.DecodeString(f.Content, f.Encoding)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, text)

	return err
}
