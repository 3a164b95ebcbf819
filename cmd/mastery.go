package cmd

import (
	"fmt"
	"sort"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/bkt/internal/mastery"
)

var masteryCmd = &cobra.Command{
	Use:   "mastery",
	Short: "Show a learner's mastery per skill",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		full, _ := cmd.Flags().GetBool("full")
		width, _ := cmd.Flags().GetInt("width")
		weakest, _ := cmd.Flags().GetInt("weakest")

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		var rows []mastery.SkillMastery
		switch {
		case cmd.Flags().Changed("weakest"):
			rows, err = svc.WeakestSkills(ctx, user, weakest)
			if err != nil {
				return err
			}
		case full:
			rows, err = svc.FullMastery(ctx, user)
			if err != nil {
				return err
			}
		default:
			m, err := svc.Mastery(ctx, user)
			if err != nil {
				return err
			}
			for skill, p := range m {
				rows = append(rows, mastery.SkillMastery{SkillID: skill, PKnown: p, Level: mastery.LevelFor(p)})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].SkillID < rows[j].SkillID })
		}

		if len(rows) == 0 {
			fmt.Printf("No mastery recorded for %q.\n", user)
			return nil
		}

		lipgloss.Println(mastery.RenderTable(rows, width, full))
		return nil
	},
}

func init() {
	masteryCmd.Flags().String("user", "", "Learner id")
	masteryCmd.Flags().Bool("full", false, "Include skill descriptions")
	masteryCmd.Flags().Int("width", 24, "Width of the mastery bars")
	masteryCmd.Flags().Int("weakest", mastery.DefaultWeakest, "Only show the N weakest skills, weakest first")
	_ = masteryCmd.MarkFlagRequired("user")
}
