package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/source"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report authored lesson and exercise counts per language",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		src, err := newSource(conf, newLogger(conf.Dev))
		if err != nil {
			return err
		}
		stats, err := source.Stats(cmd.Context(), src, curriculum.SupportedLanguages())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %7s  %9s  %7s  %8s\n", "Language", "Lessons", "Exercises", "Avg", "Coverage")
		fmt.Fprintln(out, strings.Repeat("─", 49))
		var lessons, exercises int
		for _, s := range stats {
			lessons += s.Lessons
			exercises += s.Exercises
			fmt.Fprintf(out, "%-10s  %7d  %9d  %7.1f  %7d%%\n",
				s.LanguageID, s.Lessons, s.Exercises, s.Average(), s.Coverage())
		}
		fmt.Fprintln(out, strings.Repeat("─", 49))
		fmt.Fprintf(out, "%-10s  %7d  %9d\n", "Total", lessons, exercises)
		return nil
	},
}
