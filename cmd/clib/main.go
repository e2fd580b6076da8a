// ABOUTME: CLI entry point for clib, the C package installer
// ABOUTME: Builds the command tree and maps errors to a non-zero exit status

package main

import (
	"context"
	"os"
	"os/signal"

	chttp "github.com/tjk/clib-package/internal/http"
	"github.com/tjk/clib-package/internal/log"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	chttp.UserAgent = "clib/" + version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, err := os.Getwd()
	if err != nil {
		root = "."
	}

	a := newApp(os.Stdout, os.Stderr, root)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
