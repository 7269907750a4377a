package cli

import (
	"os"

	"cardswap/internal/config"
	"cardswap/internal/logger"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "cardswap",
	Short: "cardswap trade-in backend",
	Long:  "Gift card trade-in submissions: public form, admin view and email notifications",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	// без подкоманды работает как serve
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "YAML config file (overrides CONFIG_PATH)")
	RootCmd.PersistentFlags().String("dotenv", "", "dotenv file (overrides DOTENV_FILE)")

	RootCmd.AddCommand(serveCmd, exportCmd, listCmd)
}

// loadConfig пробрасывает флаги в переменные окружения и читает конфигурацию
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("CONFIG_PATH", path); err != nil {
			return nil, err
		}
	}
	if path, _ := cmd.Flags().GetString("dotenv"); path != "" {
		if err := os.Setenv("DOTENV_FILE", path); err != nil {
			return nil, err
		}
	}
	return config.LoadConfig()
}

// initCLILogger пишет логи в stderr, stdout остаётся за выводом команды
func initCLILogger(cmd *cobra.Command, env string) {
	logger.Init(logger.Options{Env: env, Output: cmd.ErrOrStderr()})
}
