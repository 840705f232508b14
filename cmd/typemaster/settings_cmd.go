package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/store"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change stored preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSettings(func(st *store.Store, prefs *settings.Store) error {
				return listSettings(context.Background(), cmd.OutOrStdout(), st, prefs)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "get KEY",
		Short:     "Print one setting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(func(_ *store.Store, prefs *settings.Store) error {
				value, err := prefs.Value(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settings.Keys(),
		RunE: func(_ *cobra.Command, args []string) error {
			return withSettings(func(_ *store.Store, prefs *settings.Store) error {
				return prefs.Set(context.Background(), args[0], args[1])
			})
		},
	})
	return cmd
}

func withSettings(fn func(*store.Store, *settings.Store) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	prefs, err := settings.Load(context.Background(), st, settings.Defaults())
	if err != nil {
		return err
	}
	return fn(st, prefs)
}

// listSettings prints every key, marking values that are not stored yet.
func listSettings(ctx context.Context, w io.Writer, kv *store.Store, prefs *settings.Store) error {
	for _, key := range settings.Keys() {
		value, err := prefs.Value(key)
		if err != nil {
			return err
		}
		_, stored, err := kv.GetSetting(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read setting %s: %w", key, err)
		}
		suffix := ""
		if !stored {
			suffix = " (default)"
		}
		if _, err := fmt.Fprintf(w, "%s = %s%s\n", key, value, suffix); err != nil {
			return err
		}
	}
	return nil
}
