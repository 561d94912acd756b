package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/config"
	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/source"
	"github.com/abhisek/afrolingo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "afrolingo",
	Short:        "Learn African languages in the terminal",
	Long:         "Afrolingo builds seven-stage curricula for fifteen African languages and plays adaptive lessons with hearts, XP and streaks.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, "", "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AFROLINGO_DB_PATH)")
	rootCmd.PersistentFlags().String("data", "", "Directory of authored lesson files (overrides AFROLINGO_DATA_DIR; default: built-in pack)")
	rootCmd.PersistentFlags().String("user", defaultUser(), "Learner id progress is stored under")

	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "learner"
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	conf, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		conf.DBPath = p
	}
	if d, _ := cmd.Flags().GetString("data"); d != "" {
		conf.DataDir = d
	}
	return conf, nil
}

// newLogger returns a JSON logger, or a debug-level text logger in dev mode.
// Logs go to stderr so they never mix with command output or the TUI.
func newLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})

	if dev {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}

// newSource returns the lesson source selected by the configuration.
func newSource(conf config.Config, log *slog.Logger) (*source.FS, error) {
	if conf.DataDir == "" {
		return source.Builtin(log), nil
	}
	return source.Dir(conf.DataDir, log)
}

// newCatalog wires a catalog over the configured lesson source.
func newCatalog(conf config.Config, log *slog.Logger) (*curriculum.Catalog, *source.FS, error) {
	src, err := newSource(conf, log)
	if err != nil {
		return nil, nil, err
	}
	return curriculum.NewCatalog(src, log), src, nil
}

// openStore opens the progress database at the configured path, or the
// default XDG location.
func openStore(conf config.Config) (*store.Store, error) {
	dbPath := conf.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	st.SetHeartPolicy(store.HeartPolicy{
		MaxHearts: conf.Session.MaxHearts,
		Refill:    conf.Session.HeartRefill,
	})
	return st, nil
}

func userFlag(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	return u
}

// lookupLanguage resolves a --lang flag value.
func lookupLanguage(id string) (curriculum.Language, error) {
	l, ok := curriculum.LookupLanguage(id)
	if !ok {
		return curriculum.Language{}, fmt.Errorf("%w: %q", curriculum.ErrUnknownLanguage, id)
	}
	return l, nil
}
