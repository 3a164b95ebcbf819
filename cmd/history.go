package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List a learner's recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		skill, _ := cmd.Flags().GetString("skill")
		limit, _ := cmd.Flags().GetInt("limit")

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := svc.History(cmd.Context(), user, skill, limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No answers found.")
			return nil
		}

		// Header.
		fmt.Printf("%-6s  %-19s  %-26s  %-3s  %-7s  %-7s  %s\n",
			"Seq", "Timestamp", "Skill", "OK", "Before", "After", "Question")
		fmt.Println(strings.Repeat("─", 96))

		for _, e := range events {
			ok := "✓"
			if !e.Correct {
				ok = "✗"
			}
			q := e.QuestionID
			if q == "" {
				q = "-"
			}
			fmt.Printf("%-6d  %-19s  %-26s  %-3s  %-7.4f  %-7.4f  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SkillID,
				ok,
				e.PKnownBefore,
				e.PKnownAfter,
				q,
			)
		}

		if skill != "" {
			acc, n, err := svc.Accuracy(cmd.Context(), user, skill, limit)
			if err != nil {
				return fmt.Errorf("accuracy: %w", err)
			}
			fmt.Printf("\nAccuracy over last %d answers: %.0f%%\n", n, acc*100)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("user", "", "Learner id")
	historyCmd.Flags().String("skill", "", "Only answers for this skill")
	historyCmd.Flags().Int("limit", 20, "Max answers to show")
	_ = historyCmd.MarkFlagRequired("user")
}
