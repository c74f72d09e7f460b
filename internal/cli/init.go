package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize rflinks configuration and storage",
		Long: `Create the configuration directory and config.yaml if they are missing,
then open the storage backend. Empty storage is seeded with the default
links.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}

	// Only an explicit --data-dir is pinned in config.yaml; otherwise each
	// working directory keeps its own data.
	fileCfg := configFile{
		Backend:  cfg.Backend,
		PageSize: cfg.GetPageSize(),
		LogLevel: a.v.GetString(cfgKeyLogLevel),
	}
	if a.flags.dataDir != "" {
		fileCfg.DataDir = cfg.DataDir
	}

	configPath := filepath.Join(a.configDir, configFileFull)
	created, err := writeConfigIfMissing(configPath, fileCfg)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return a.withSession(cmd, func(s *session) error {
		out := cmd.OutOrStdout()
		if created {
			fmt.Fprintf(out, "Wrote %s\n", configPath)
		}
		fmt.Fprintf(out, "rflinks initialized (%s backend, %d links in %s)\n",
			s.cfg.Backend, s.store.Len(), s.cfg.DataDir)
		return nil
	})
}
