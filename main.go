package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/vic3def/cli"
	"github.com/ardnew/vic3def/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // errors carry their own LogValue
		os.Exit(1)
	}
}
