// Command dashboard serves the Thread & Trend dashboard and its JSON API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ahmedokasha74/thread-trend-dashboard/internal/app"
	"github.com/ahmedokasha74/thread-trend-dashboard/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		info := contracts.GetVersionInfo()
		fmt.Printf("%s (%s, commit %s, built %s)\n", contracts.GetVersionString(), info.Stage, info.GitCommit, info.BuildTime)
		return
	}

	application, err := app.NewApplication(*configPath)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
