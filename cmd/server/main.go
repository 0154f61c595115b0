// The server command runs the LifeOps advisor API: an HTTP service that
// turns a snapshot of someone's health, finance, and study situation
// into a coordinated multi-domain report backed by Gemini, with a
// deterministic fallback when the backend is unavailable.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app, err := newApplication(context.Background())
	if err != nil {
		return err
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
