package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/source"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their authored lesson counts",
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
		fmt.Fprintf(out, "%-10s  %-12s  %-12s  %7s\n", "ID", "Name", "Nom", "Lessons")
		fmt.Fprintln(out, strings.Repeat("─", 47))
		for i, l := range curriculum.SupportedLanguages() {
			fmt.Fprintf(out, "%-10s  %-12s  %-12s  %7d\n", l.ID, l.Name, l.NameFr, stats[i].Lessons)
		}
		return nil
	},
}
