package cli

import (
	"cardswap/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}

		return app.Run(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides PORT)")
}
