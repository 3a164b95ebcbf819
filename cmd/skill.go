package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bkt/internal/skills"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalog skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := skills.All()

		// Header.
		fmt.Printf("%-26s  %s\n", "ID", "Description")
		fmt.Println(strings.Repeat("─", 72))

		for _, s := range all {
			fmt.Printf("%-26s  %s\n", s.ID, s.Description)
		}

		fmt.Printf("\n%d skills\n", len(all))
		return nil
	},
}

func init() {
	skillCmd.AddCommand(skillListCmd)
}
