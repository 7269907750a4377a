package cli

import (
	"fmt"
	"text/tabwriter"

	"cardswap/internal/app"
	"cardswap/internal/services"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "print submissions, most recent first",
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

		svc := services.NewSubmissionService(store, nil, nil, nil, 0)
		submissions, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit > 0 && len(submissions) > limit {
			submissions = submissions[:limit]
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tNAME\tCONTACT\tBRAND\tVALUE\tIMAGE")
		for _, s := range submissions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Timestamp, s.Name, s.Contact, s.Brand, s.Value, s.Image)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().Int("limit", 0, "show only the N most recent submissions")
}
