// Package cmd wires the CLI entry point. The root command starts the
// dashboard; exit codes are 0 for a clean quit, 1 for initialization
// failures, and 2 for unrecoverable runtime errors.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/g/app"
	"github.com/lixenwraith/g/config"
	"github.com/lixenwraith/g/git"
	"github.com/lixenwraith/g/logging"
	"github.com/lixenwraith/g/terminal"
)

// Version is stamped by the build
var Version = "dev"

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:     "g [path]",
	Short:   "Terminal dashboard for git repositories",
	Long:    "g is a lazygit-style terminal dashboard: inspect status, stage changes,\ncommit, switch branches, view diffs, and run network operations without\nleaving the terminal.",
	Args:    cobra.MaximumNArgs(1),
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		os.Exit(run(dir))
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default $XDG_CONFIG_HOME/g/config.toml)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run performs startup in dependency order: config, repository, logger,
// controller, terminal. Anything failing before the loop exits 1; the
// terminal is only mutated after every other piece is ready.
func run(dir string) int {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	repo, err := git.Open(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	log := logging.Nop()
	if logFile, err := logging.OpenFile("g"); err == nil {
		defer logFile.Close()
		level := logging.Info
		if flagDebug {
			level = logging.Debug
		}
		log = logging.New(logFile, level)
	}
	log.Info("starting", logging.F("repo", repo.Name()), logging.F("version", Version))

	controller, err := app.New(repo, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	term := terminal.New()
	if err := term.Init(); err != nil {
		// Raw mode is already unwound by Init's own failure path
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	code := controller.Run(term)
	log.Info("exiting", logging.F("code", code))
	return code
}
