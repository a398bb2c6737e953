package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// zkb64 compiles, serves and checks circuits proving that a public base64
// string encodes secret bytes
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
