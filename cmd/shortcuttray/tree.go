package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/manifold/shortcuttray/pkg/console"
	"github.com/manifold/shortcuttray/pkg/menu"
)

// `shortcuttray tree` command
func treeCmd() *cobra.Command {
	var dump, noColor bool
	cmd := &cobra.Command{
		Use:   "tree <folder>",
		Short: "Prints the menu built from a folder",
		Long:  "Prints the menu built from a folder. Shortcuts whose icon could not be resolved are flagged.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			root := requireRoot(args)
			logger := newLogger()
			defer logger.Sync()

			fs := afero.NewOsFs()
			entries := menu.NewBuilder(fs, newIconCache(fs, logger), logger).Build(root, cfg.OpenFolderEntry)

			c := console.New(os.Stdout, !noColor)
			if dump {
				c.Dump(entries)
				return
			}
			c.WriteTree(entries)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump raw entries")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&cfg.OpenFolderEntry, "open-folder", true, "include open-folder entries")
	return cmd
}
