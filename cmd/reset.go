package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored progress and lesson history",
	RunE: func(cmd *cobra.Command, args []string) error {
		langID, _ := cmd.Flags().GetString("lang")
		yes, _ := cmd.Flags().GetBool("yes")
		user := userFlag(cmd)

		if langID != "" {
			if _, err := lookupLanguage(langID); err != nil {
				return err
			}
		}

		scope := "all languages"
		if langID != "" {
			scope = langID
		}
		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete progress of %s in %s? [y/N] ", user, scope)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(conf)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProgressRepo().Reset(cmd.Context(), user, langID); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress of %s in %s deleted.\n", user, scope)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("lang", "", "Only reset this language")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
