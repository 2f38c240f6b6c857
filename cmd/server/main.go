package main

import (
	"context"
	"log/slog"
	"os"

	"teacher-transfer-system/internal/app"
)

func main() {
	ctx := context.Background()

	a, err := app.New(ctx)
	if err != nil {
		slog.Error("startup failed", "error", err.Error())
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
}
