// Command auth runs the passwordless email OTP authentication service.
package main

import (
	"log/slog"
	"os"

	"github.com/aussiebroadwan/hdnotes/internal/auth/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}
