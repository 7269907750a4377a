// @title           Cardswap API
// @version         1.0
// @description     Приём заявок на обмен подарочных карт и контактная форма.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3000
// @BasePath        /

// @securityDefinitions.basic  BasicAuth

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cardswap/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
