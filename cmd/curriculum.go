package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Print the stages and lessons built for a language",
	RunE: func(cmd *cobra.Command, args []string) error {
		langID, _ := cmd.Flags().GetString("lang")
		stageNum, _ := cmd.Flags().GetInt("stage")
		locale, _ := cmd.Flags().GetString("locale")

		loc, err := curriculum.ParseLocale(locale)
		if err != nil {
			return err
		}
		if _, err := lookupLanguage(langID); err != nil {
			return err
		}
		if stageNum < 0 || stageNum > curriculum.StageCount {
			return fmt.Errorf("--stage must be between 1 and %d", curriculum.StageCount)
		}

		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, _, err := newCatalog(conf, newLogger(conf.Dev))
		if err != nil {
			return err
		}
		stages, err := catalog.Stages(cmd.Context(), langID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, st := range stages {
			if stageNum != 0 && st.StageNumber != stageNum {
				continue
			}
			fmt.Fprintf(out, "Stage %d  %s  (%s)\n", st.StageNumber, st.TitleIn(loc), st.ID)
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, l := range st.Lessons {
				title := l.TitleIn(loc)
				if r := []rune(title); len(r) > 32 {
					title = string(r[:29]) + "..."
				}
				fmt.Fprintf(out, "  %2d. %-32s  %-10s  %3d XP  %2d exercises  %s\n",
					l.LessonNumber, title, l.Type, l.XPReward, len(l.Exercises), l.ID)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	curriculumCmd.Flags().String("lang", "", "Language id (e.g. swahili)")
	curriculumCmd.Flags().Int("stage", 0, "Only print this stage (1-7)")
	curriculumCmd.Flags().String("locale", "en", "Interface language: en or fr")
	_ = curriculumCmd.MarkFlagRequired("lang")
}
