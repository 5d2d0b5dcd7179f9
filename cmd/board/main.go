package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/five82/issueboard/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (default ~/.config/issueboard/config.toml)")
	prefsPath := flag.String("prefs", "", "override preferences path (default ~/.config/issueboard/prefs.toml)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to config)")
	backendAddr := flag.String("backend", "", "boardd address; empty runs the simulated backend in-process")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		BackendAddr: *backendAddr,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "board: %v\n", err)
		return 1
	}
	return 0
}
