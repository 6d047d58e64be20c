package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/manifold/shortcuttray/pkg/menu"
)

// `shortcuttray fingerprint` command
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <folder>",
		Short: "Prints the change fingerprint of a folder",
		Long:  "Prints the fingerprint used to decide whether the menu must be rebuilt: one line per visible file with its size.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			root := requireRoot(args)
			fmt.Print(menu.NewDetector(afero.NewOsFs(), nil).Fingerprint(root))
		},
	}
}
