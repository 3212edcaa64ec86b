package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chemstack/chemconsole/internal/console"
	"github.com/chemstack/chemconsole/internal/session/sqlite"
	"github.com/chemstack/chemconsole/pkg/logger"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive admin console",
	Long:  `Start the interactive terminal console against the configured backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		runConsole()
	},
}

func runConsole() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper()

	store, err := sqlite.NewStore(cfg.Session.StorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session store: %v\n", err)
		os.Exit(1)
	}

	app := console.NewApp(cfg, store, os.Stdin, os.Stdout, lg)
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "console exited: %v\n", err)
		os.Exit(1)
	}
}
