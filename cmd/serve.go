package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/bkt/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the BKT HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.Strings("allowed_origins", cfg.Server.AllowedOrigins),
			zap.Bool("strict_skills", cfg.StrictSkills),
		)
		return api.NewServer(cfg, svc, logger).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides BKT_ADDR env var)")
}
