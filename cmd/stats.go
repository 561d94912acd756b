package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/afrolingo/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored learning progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(conf)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		user := userFlag(cmd)
		now := time.Now()

		list, err := st.ProgressRepo().List(ctx, user, now)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintf(out, "No progress stored for %s yet.\n", user)
			return nil
		}

		fmt.Fprintf(out, "%-10s  %6s  %6s  %7s  %6s  %7s  %s\n",
			"Language", "XP", "Hearts", "Lessons", "Streak", "Longest", "Next goal")
		fmt.Fprintln(out, strings.Repeat("─", 66))
		for _, p := range list {
			fmt.Fprintf(out, "%-10s  %6d  %6s  %7d  %6d  %7d  %d days\n",
				p.LanguageID, p.XP, hearts(p, now), len(p.CompletedLessons),
				p.CurrentStreak(now), p.LongestStreak, store.NextStreakMilestone(p.CurrentStreak(now)))
		}

		if recent <= 0 {
			return nil
		}
		sessions, err := st.SessionEventRepo().Recent(ctx, user, recent)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nRecent lessons\n%s\n", strings.Repeat("─", 66))
		for _, s := range sessions {
			state := fmt.Sprintf("%3d XP", s.Report.XPEarned)
			if !s.Complete {
				state = "  left"
			}
			fmt.Fprintf(out, "%s  %-10s  %-20s  %2d/%-2d  %3.0f%%  %s\n",
				s.FinishedAt.Local().Format("2006-01-02 15:04"), s.LanguageID, s.LessonID,
				s.Correct, s.Total, min(s.Accuracy(), 1)*100, state)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 10, "Also list this many recent lessons (0 to hide)")
}

func hearts(p store.Progress, now time.Time) string {
	if p.HeartsResetAt == nil {
		return fmt.Sprintf("%g", p.Hearts)
	}
	wait := p.HeartsResetAt.Sub(now).Round(time.Minute)
	return fmt.Sprintf("%g (+%s)", p.Hearts, strings.TrimSuffix(wait.String(), "0s"))
}
