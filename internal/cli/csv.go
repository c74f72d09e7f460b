package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rflinks/internal/store"
)

// stdioName selects stdin or stdout in place of a file path.
const stdioName = "-"

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every link to a CSV file",
		Long: fmt.Sprintf(`Write the full collection to a CSV file, ignoring any search or page.
The default file is %s; "-" writes to standard output.`, store.ExportFileName),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := store.ExportFileName
			if len(args) == 1 {
				path = args[0]
			}
			return a.withSession(cmd, func(s *session) error {
				if path == stdioName {
					return s.store.ExportCSV(cmd.OutOrStdout())
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := s.store.ExportCSV(f); err != nil {
					f.Close()
					return fmt.Errorf("write export file: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close export file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d links to %s\n", s.store.Len(), path)
				return nil
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add links from a CSV file",
		Long: `Add links from a CSV file whose first row names the columns. Links whose
ID already exists are skipped; existing links are never overwritten.
"-" reads from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader
			if args[0] == stdioName {
				r = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return userError(fmt.Errorf("open import file: %w", err))
				}
				defer f.Close()
				r = f
			}
			return a.withSession(cmd, func(s *session) error {
				res, err := s.store.ImportCSV(r)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, res)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d new links\n", res.Imported)
				if res.Duplicates > 0 {
					fmt.Fprintf(out, "Skipped %d duplicate links\n", res.Duplicates)
				}
				for _, rowErr := range res.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", rowErr)
				}
				return nil
			})
		},
	}
}

