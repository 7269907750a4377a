package cli

import (
	"fmt"
	"io"
	"os"

	"cardswap/internal/app"
	"cardswap/internal/repositories"
	"cardswap/internal/services"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "write all submissions as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		initCLILogger(cmd, cfg.Server.Env)

		store, closeStore, err := app.NewStore(cfg)
		if err != nil {
			return err
		}
		if closeStore != nil {
			defer closeStore()
		}

		var out io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" && path != "-" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}

		return exportSubmissions(cmd, store, out)
	},
}

func exportSubmissions(cmd *cobra.Command, store repositories.SubmissionStore, out io.Writer) error {
	svc := services.NewSubmissionService(store, nil, nil, nil, 0)
	return svc.Export(cmd.Context(), out)
}

func init() {
	exportCmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
}
