// Command paxada generates TypeScript models, interfaces and validators from
// entity and route doc files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rifhice/paxada/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.NewLogger("cli").Error(err)
		os.Exit(1)
	}
}
