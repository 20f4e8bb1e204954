// Command netchoo is a terminal network throughput monitor. It samples
// per-interface byte counters on a fixed interval and draws a scrolling
// rate chart for every active interface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"netchoo/internal/config"
	"netchoo/internal/logging"
	"netchoo/internal/monitor"
	"netchoo/internal/netif"
	"netchoo/internal/ui"
)

const version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	logging.SetupFromEnv()

	cfg, showVersion, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	if showVersion {
		fmt.Println("netchoo " + version)
		return 0
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return 1
	}

	slog.Info("Starting netchoo",
		"window", cfg.WindowDuration,
		"sample_interval", cfg.SampleInterval,
		"reverse_bridge_colors", cfg.ReverseBridgeColors)

	mon := monitor.New(cfg, netif.NewSampler())
	if err := ui.NewApp(cfg, mon).Run(); err != nil {
		slog.Error("Terminal ui failed", "error", err)
		return 1
	}
	return 0
}

// loadConfig layers the optional config file under the command-line
// flags: flag defaults come from the file, so an unset flag keeps the
// file's value and a set flag overrides it.
func loadConfig() (config.Config, bool, error) {
	cfg := config.Default()
	if path, err := config.Path(); err == nil {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, false, err
		}
	}

	windowSec := int(cfg.WindowDuration / time.Second)
	sampleMS := int(cfg.SampleInterval / time.Millisecond)
	reverse := cfg.ReverseBridgeColors
	showVersion := false

	flag.IntVar(&windowSec, "t", windowSec, "time window for the chart history in seconds")
	flag.IntVar(&windowSec, "time", windowSec, "time window for the chart history in seconds (same as -t)")
	flag.IntVar(&sampleMS, "s", sampleMS, "sample interval in milliseconds")
	flag.IntVar(&sampleMS, "sample", sampleMS, "sample interval in milliseconds (same as -s)")
	flag.BoolVar(&reverse, "r", reverse, "reverse rx/tx colors on docker bridge interfaces")
	flag.BoolVar(&reverse, "reverse", reverse, "reverse rx/tx colors on docker bridge interfaces (same as -r)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	cfg.WindowDuration = time.Duration(windowSec) * time.Second
	cfg.SampleInterval = time.Duration(sampleMS) * time.Millisecond
	cfg.ReverseBridgeColors = reverse
	return cfg, showVersion, nil
}
