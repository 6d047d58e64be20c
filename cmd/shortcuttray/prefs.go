package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/manifold/shortcuttray/pkg/config"
)

// `shortcuttray prefs` command
func prefsCmd() *cobra.Command {
	var showMessage bool
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Shows or changes preferences",
		Long:  "Shows the stored preferences, or changes them with flags.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			path := cfg.PreferencesPath
			if path == "" {
				var err error
				path, err = config.DefaultPreferencesPath()
				fatal(err)
			}
			store := config.Store{Fs: afero.NewOsFs(), Path: path}
			prefs, err := store.Load()
			fatal(err)

			if cmd.Flags().Changed("show-message") {
				prefs.ShowMessage = showMessage
				fatal(store.Save(prefs))
			}
			fmt.Printf("%s\nshow-message: %t\n", path, prefs.ShowMessage)
		},
	}
	cmd.Flags().BoolVar(&showMessage, "show-message", true, "show a message when the tray starts")
	return cmd
}
