package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bkt/internal/mastery"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Record one answered question and print the update",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		skill, _ := cmd.Flags().GetString("skill")
		correct, _ := cmd.Flags().GetBool("correct")
		lesson, _ := cmd.Flags().GetString("lesson")
		question, _ := cmd.Flags().GetString("question")

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := svc.RecordAnswer(cmd.Context(), mastery.Observation{
			UserID:     user,
			SkillID:    skill,
			Correct:    correct,
			LessonID:   lesson,
			QuestionID: question,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%-8s %.4f\n", "p_old", res.Old)
		fmt.Printf("%-8s %.4f\n", "p_new", res.New)
		fmt.Printf("%-8s %.4f\n", "p_learn", res.Learn)
		fmt.Printf("%-8s %.4f\n", "p_guess", res.Guess)
		fmt.Printf("%-8s %.4f\n", "p_slip", res.Slip)
		return nil
	},
}

func init() {
	answerCmd.Flags().String("user", "", "Learner id")
	answerCmd.Flags().String("skill", "", "Skill id")
	answerCmd.Flags().Bool("correct", false, "The answer was correct")
	answerCmd.Flags().String("lesson", "", "Lesson id (optional)")
	answerCmd.Flags().String("question", "", "Question id (optional)")
	_ = answerCmd.MarkFlagRequired("user")
	_ = answerCmd.MarkFlagRequired("skill")
}
