package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/crossword/internal/config"
	"github.com/robalobadob/crossword/internal/db"
	"github.com/robalobadob/crossword/internal/httpserver"
	"github.com/robalobadob/crossword/internal/puzzles"
	"github.com/robalobadob/crossword/internal/results"
	"github.com/robalobadob/crossword/internal/store"
)

var (
	servePort   string
	serveDBPath string
	serveStrict bool
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the crossword HTTP server",
		Long: `Run the crossword HTTP server.

Configuration is read from the environment (and a .env file if present);
flags override the matching variables.

Examples:
  crossword serve
  crossword serve --port 8080 --db ./data/dev.db
  PUZZLES_DIR=./puzzles crossword serve --strict`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "HTTP port (overrides PORT)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite file (overrides DB_PATH)")
	serveCmd.Flags().BoolVar(&serveStrict, "strict", false, "Reject puzzles with layout issues")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if servePort != "" {
		cfg.Port = servePort
	}
	if serveDBPath != "" {
		cfg.DBPath = serveDBPath
	}
	if serveStrict {
		cfg.StrictLayout = true
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	cat, err := puzzles.Load(cfg.PuzzlesDir)
	if err != nil {
		return fmt.Errorf("load puzzles: %w", err)
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), cat, results.NewStore(conn))
	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Bool("strict", cfg.StrictLayout).
		Int("timeLimit", cfg.Game.TimeLimit).
		Msg("starting crossword server")
	return srv.Start(":" + cfg.Port)
}
