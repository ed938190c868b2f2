// Command modconsole is the interactive moderation console. It opens the
// configured default collection and takes over the terminal until the user
// quits with q (on the overview) or ctrl-c.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("modconsole: %v", err)
	}
}
