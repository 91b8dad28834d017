// Command ttreco reconstructs dileptonic top-pair events.
//
//	ttreco generate --n 100 --out events.jsonl
//	ttreco reconstruct --input events.jsonl --output ttreco.db --yoda hists.yoda
//	ttreco observables --db ttreco.db > observables.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ttreco:", err)
		stop()
		os.Exit(1)
	}
}
