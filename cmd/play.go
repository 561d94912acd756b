package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/app"
	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/screens/lessonmap"
	sessionscreen "github.com/abhisek/afrolingo/internal/screens/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play lessons in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		langID, _ := cmd.Flags().GetString("lang")
		lessonID, _ := cmd.Flags().GetString("lesson")
		if lessonID != "" && langID == "" {
			return fmt.Errorf("--lesson requires --lang")
		}
		return runPlay(cmd, langID, lessonID)
	},
}

func init() {
	playCmd.Flags().String("lang", "", "Open this language's lesson map")
	playCmd.Flags().String("lesson", "", "Start this lesson right away (requires --lang)")
	playCmd.Flags().String("locale", "en", "Interface language: en or fr")
	playCmd.Flags().Bool("subscriber", false, "Play without heart limits")
}

// runPlay opens the store, builds the screen environment and launches the
// TUI, optionally opened at a language or a lesson.
func runPlay(cmd *cobra.Command, langID, lessonID string) error {
	locale, _ := cmd.Flags().GetString("locale")
	subscriber, _ := cmd.Flags().GetBool("subscriber")

	loc, err := curriculum.ParseLocale(locale)
	if err != nil {
		return err
	}

	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(conf.Dev)

	catalog, _, err := newCatalog(conf, log)
	if err != nil {
		return err
	}
	st, err := openStore(conf)
	if err != nil {
		return err
	}
	defer st.Close()

	env := &screen.Env{
		Catalog:      catalog,
		Progress:     st.ProgressRepo(),
		History:      st.SessionEventRepo(),
		OnSessionEnd: st.SessionReporter(log),
		UserID:       userFlag(cmd),
		Locale:       loc,
		Subscriber:   subscriber,
		Questions:    conf.Session.Questions,
		MaxHearts:    conf.Session.MaxHearts,
		Now:          time.Now,
	}

	var start []screen.Screen
	if langID != "" {
		lang, err := lookupLanguage(langID)
		if err != nil {
			return err
		}
		start = append(start, lessonmap.New(env, lang))

		if lessonID != "" {
			ctx := cmd.Context()
			lesson, err := catalog.Lesson(ctx, langID, lessonID)
			if err != nil {
				return err
			}
			p, err := env.LoadProgress(ctx, langID)
			if err != nil {
				return err
			}
			start = append(start, sessionscreen.New(env, langID, lesson, p.Hearts))
		}
	}

	return app.Run(env, start...)
}
