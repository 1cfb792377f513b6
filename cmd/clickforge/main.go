package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	clickforgecmd "github.com/louisbranch/clickforge/internal/cmd/clickforge"
)

func main() {
	cfg, err := clickforgecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CLICKFORGE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := clickforgecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
