// Package cli implements the rflinks command-line interface: the
// presentation layer over the record store. Each invocation loads the
// collection once, runs one command, and exits.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/rflinks/internal/logging"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	jsonMode  bool
}

// app carries per-invocation state from the root command to subcommands.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
}

// NewRootCmd creates the top-level "rflinks" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rflinks",
		Short: "Manage an inventory of RF network links",
		Long: `rflinks keeps a local inventory of RF network links (POP, BTS, client,
base/client/loopback addresses, location). It supports search, paging,
aggregate counts, and CSV import/export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: rflinks under the user config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.rflinks-db)")
	pf.StringVar(&a.flags.backend, "backend", types.BackendJSON, "storage backend: json, jsonl, sqlite or memory")
	pf.StringVar(&a.flags.logLevel, "log-level", logging.DefaultLevel, "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newResetCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rflinks:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitError pins an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by the user's input.
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// userErrors are the sentinel errors reported with exitUserError.
var userErrors = []error{
	types.ErrRecordNotFound,
	types.ErrDuplicateID,
	types.ErrInvalidID,
	types.ErrMalformedHeader,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrPageSizeInvalid,
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	if errors.Is(err, types.ErrStorageUnavailable) {
		return exitSysError
	}
	// Flag and argument errors from cobra land here too.
	return exitUserError
}
