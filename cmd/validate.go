package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

// maxIssuesPerLanguage bounds the issues printed for one language.
const maxIssuesPerLanguage = 20

var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check lesson files and built curricula for structural problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		langID, _ := cmd.Flags().GetString("lang")

		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(conf.Dev)
		catalog, src, err := newCatalog(conf, log)
		if err != nil {
			return err
		}

		langs := catalog.Languages()
		if langID != "" {
			l, err := lookupLanguage(langID)
			if err != nil {
				return err
			}
			langs = []curriculum.Language{l}
		}

		ctx := cmd.Context()
		issues, err := src.CheckSchema(ctx, langs)
		if err != nil {
			return err
		}
		for _, l := range langs {
			stages, err := catalog.Stages(ctx, l.ID)
			if err != nil {
				return err
			}
			issues = append(issues, curriculum.Validate(l.ID, stages)...)
		}

		out := cmd.OutOrStdout()
		if len(issues) == 0 {
			fmt.Fprintf(out, "All %d curricula are valid.\n", len(langs))
			return nil
		}
		printIssues(out, issues)
		return fmt.Errorf("%w: %d issues", errValidationFailed, len(issues))
	},
}

func init() {
	validateCmd.Flags().String("lang", "", "Only validate this language")
}

// printIssues prints issues grouped by language, at most
// maxIssuesPerLanguage per group.
func printIssues(w io.Writer, issues []curriculum.Issue) {
	fmt.Fprintf(w, "Found %d issue(s):\n", len(issues))
	for _, g := range curriculum.GroupByLanguage(issues) {
		fmt.Fprintf(w, "\n[%s] %d issue(s)\n", g.LanguageID, len(g.Issues))
		shown := g.Issues[:min(len(g.Issues), maxIssuesPerLanguage)]
		for _, is := range shown {
			fmt.Fprintf(w, "  - %s: %s\n", is.Where, is.Message)
		}
		if rest := len(g.Issues) - len(shown); rest > 0 {
			fmt.Fprintf(w, "  ...and %d more\n", rest)
		}
	}
}
