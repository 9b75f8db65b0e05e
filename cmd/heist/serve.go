package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/array-heist/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetrics     string
	flagWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the heist SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level picker. Results are
stored per-server under the SSH user name (all users share the best times).

Gameplay config:
  - --config picks the YAML file; with --watch it is reloaded on change
    and new connections use the reloaded settings

Metrics:
  - --metrics :9090 serves Prometheus metrics at /metrics

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.heist/host_key

Examples:
  heist serve                           # Listen on :23234 with auto-generated key
  heist serve --ssh :2222               # Listen on port 2222
  heist serve --host-key ./my_host_key  # Use specific host key
  heist serve --db ./results.db         # Use specific database
  heist serve --config ./heist.yaml --watch --metrics :9090

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetrics, "metrics", "", "Serve Prometheus metrics on this address (disabled if empty)")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --config when the file changes")
}

func runServe(_ *cobra.Command, _ []string) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --log-level: %v\n", err)
		os.Exit(1)
	}

	// The server owns no terminal, so it logs to stderr unless told otherwise.
	out := os.Stderr
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", openErr)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist-ssh",
		Level:           level,
	})

	gameCfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = gameCfg
	cfg.Logger = logger
	cfg.MetricsAddress = flagMetrics
	if flagWatch {
		if flagConfig == "" {
			fmt.Fprintln(os.Stderr, "Error: --watch needs --config")
			os.Exit(1)
		}
		cfg.ConfigPath = flagConfig
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting heist SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
