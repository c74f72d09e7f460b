package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rflinks/internal/store"
	"github.com/mesh-intelligence/rflinks/pkg/types"
)

// fieldFlags maps each record field to the flag that sets it.
var fieldFlags = []struct {
	field string
	flag  string
	usage string
}{
	{types.FieldID, "id", "link ID"},
	{types.FieldPOPName, "pop", "POP name"},
	{types.FieldBTSName, "bts", "BTS name"},
	{types.FieldClientName, "client", "client name"},
	{types.FieldBaseIP, "base-ip", "base IP address"},
	{types.FieldClientIP, "client-ip", "client IP address"},
	{types.FieldLoopbackIP, "loopback-ip", "loopback IP address (optional)"},
	{types.FieldLocation, "location", "location"},
}

// addFieldFlags registers one string flag per record field.
func addFieldFlags(cmd *cobra.Command) {
	for _, ff := range fieldFlags {
		cmd.Flags().String(ff.flag, "", ff.usage)
	}
}

// applyFieldFlags copies every changed field flag into rec.
func applyFieldFlags(cmd *cobra.Command, rec *types.Record) (int, error) {
	changed := 0
	for _, ff := range fieldFlags {
		if !cmd.Flags().Changed(ff.flag) {
			continue
		}
		v, err := cmd.Flags().GetString(ff.flag)
		if err != nil {
			return changed, err
		}
		rec.SetField(ff.field, v)
		changed++
	}
	return changed, nil
}

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a link",
		Long: `Add a link. Every field except --id and --loopback-ip is required.
Without --id a new ID of the form LNK-<uuid> is generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec types.Record
			if _, err := applyFieldFlags(cmd, &rec); err != nil {
				return err
			}
			if !cmd.Flags().Changed("id") {
				rec.ID = store.NewID()
			}
			return a.withSession(cmd, func(s *session) error {
				if err := s.store.Add(rec); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, rec)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added link %s\n", rec.ID)
				return nil
			})
		},
	}
	addFieldFlags(cmd)
	for _, name := range []string{"pop", "bts", "client", "base-ip", "client-ip", "location"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a link",
		Long: `Change fields of the link with the given ID. Only the fields passed
as flags are changed; --id renames the link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withSession(cmd, func(s *session) error {
				rec, err := s.store.Get(id)
				if err != nil {
					return err
				}
				n, err := applyFieldFlags(cmd, &rec)
				if err != nil {
					return err
				}
				if n == 0 {
					return userError(errors.New("nothing to update: pass at least one field flag"))
				}
				if err := s.store.Update(id, rec); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, rec)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated link %s\n", rec.ID)
				return nil
			})
		},
	}
	addFieldFlags(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete every link with the given ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				n, err := s.store.Delete(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d link(s) with ID %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all links with the default set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError(errors.New("reset discards every stored link; pass --yes to confirm"))
			}
			return a.withSession(cmd, func(s *session) error {
				if err := s.store.Reset(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset to %d default links\n", s.store.Len())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
