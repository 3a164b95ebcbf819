package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create catalog skill states a learner does not have yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		p := cfg.Model.SeedPrior
		if cmd.Flags().Changed("initial") {
			p, _ = cmd.Flags().GetFloat64("initial")
		}

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := svc.Seed(cmd.Context(), user, p)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d skills for %q at p_known %.2f.\n", n, user, p)
		return nil
	},
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Reset every catalog skill state of a learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		p := cfg.Model.SeedPrior
		if cmd.Flags().Changed("p-known") {
			p, _ = cmd.Flags().GetFloat64("p-known")
		}

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ids, err := svc.Bootstrap(cmd.Context(), user, p)
		if err != nil {
			return err
		}
		fmt.Printf("Bootstrapped %q at p_known %.2f: %s\n", user, p, strings.Join(ids, ", "))
		return nil
	},
}

func init() {
	seedCmd.Flags().String("user", "", "Learner id")
	seedCmd.Flags().Float64("initial", 0, "Initial p_known (default BKT_SEED_P_KNOWN or 0.2)")
	_ = seedCmd.MarkFlagRequired("user")

	bootstrapCmd.Flags().String("user", "", "Learner id")
	bootstrapCmd.Flags().Float64("p-known", 0, "p_known to write (default BKT_SEED_P_KNOWN or 0.2)")
	_ = bootstrapCmd.MarkFlagRequired("user")
}
