package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/manifold/shortcuttray/pkg/config"
	"github.com/manifold/shortcuttray/pkg/daemon"
	"github.com/manifold/shortcuttray/pkg/icon"
	"github.com/manifold/shortcuttray/pkg/launcher"
	zaplog "github.com/manifold/shortcuttray/pkg/logging/zap"
	"github.com/manifold/shortcuttray/pkg/menu"
	"github.com/manifold/shortcuttray/pkg/shell"
	"github.com/manifold/shortcuttray/pkg/shelllink"
	"github.com/manifold/shortcuttray/pkg/tray"
	"github.com/manifold/shortcuttray/pkg/watch"
)

var (
	rootCmd = &cobra.Command{
		Use:   "shortcuttray <folder>",
		Short: "Shows a folder of shortcuts as a tray menu",
		Long: "Shows the contents of a folder, subfolders included, as a popup menu in the\n" +
			"notification area. Clicking an entry starts it; hold the elevate key to run\n" +
			"it elevated. Entries whose name starts with $ are hidden.",
		Args: cobra.MaximumNArgs(1),
		Run:  runTray,
	}

	cfg = config.Default()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.Dev, "dev", "d", false, "run in debug mode")
	rootCmd.Flags().BoolVarP(&cfg.Watch, "watch", "w", false, "rebuild the menu when the folder changes instead of on open")
	rootCmd.Flags().BoolVar(&cfg.OpenFolderEntry, "open-folder", true, "add an entry that opens the folder itself")
	rootCmd.Flags().StringVar(&cfg.ElevateKey, "elevate-key", "shift", "modifier held while clicking to run elevated (shift or ctrl)")
	rootCmd.PersistentFlags().StringVar(&cfg.PreferencesPath, "prefs", "", "path to the preferences file (default is the user config dir)")

	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(fingerprintCmd())
	rootCmd.AddCommand(prefsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTray(cmd *cobra.Command, args []string) {
	fs := afero.NewOsFs()
	dialogs := shell.Dialogs{Title: config.AppName}

	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if err := cfg.Validate(fs); err != nil {
		dialogs.Notify(config.AppName, err.Error())
		os.Exit(1)
	}

	logger := newLogger()
	defer logger.Sync()

	key, _ := shell.ParseKey(cfg.ElevateKey)
	cache := newIconCache(fs, logger)
	builder := menu.NewBuilder(fs, cache, logger)
	builder.FolderIcon = icon.Stock(shell.Extractor{}, shell32(), 3, icon.Folder())

	popup := tray.NewSystray(logger, config.AppName, key)
	ctrl := tray.NewController(cfg.Root, builder, menu.NewDetector(fs, logger), launcher.New(fs, dialogs, logger), popup, logger)
	ctrl.OpenFolderEntry = cfg.OpenFolderEntry
	ctrl.ElevateKey = key
	ctrl.ExitIcon = icon.Stock(shell.Extractor{}, shell32(), 131, icon.Exit())
	ctrl.Prefs = config.Store{Fs: fs, Path: cfg.PreferencesPath}
	ctrl.Icons = cache
	popup.Controller = ctrl

	svc := &tray.Service{
		Controller: ctrl,
		Tray:       popup,
		Fs:         fs,
		Notifier:   dialogs,
		Log:        logger,
	}
	// the tray is first so it terminates last
	services := []daemon.Service{svc}
	if cfg.Watch {
		services = append(services, &watch.Service{
			Root:   cfg.Root,
			Fs:     fs,
			Target: ctrl,
			Log:    logger,
		})
	}
	dm := daemon.New(services...)
	svc.Daemon = dm

	logger.Infow("starting", "root", cfg.Root, "watch", cfg.Watch, "elevateKey", key)
	fatal(dm.Run(context.Background()))
}

func newLogger() *zap.SugaredLogger {
	logger, err := zaplog.New(cfg.Dev)
	fatal(err)
	return logger
}

func newIconCache(fs afero.Fs, logger *zap.SugaredLogger) *icon.Cache {
	resolver := icon.NewResolver(shelllink.NewReader(fs), shell.ScriptHost{}, shell.Extractor{}, logger)
	return icon.NewCache(fs, resolver)
}

func shell32() string {
	if root := os.Getenv("SystemRoot"); root != "" {
		return root + `\System32\shell32.dll`
	}
	return "shell32.dll"
}

func fatal(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func requireRoot(args []string) string {
	c := cfg
	if len(args) > 0 {
		c.Root = args[0]
	}
	if err := c.ValidateRoot(afero.NewOsFs()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return c.Root
}
