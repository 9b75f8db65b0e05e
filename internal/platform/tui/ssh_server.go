package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/array-heist/internal/config"
	"github.com/vovakirdan/array-heist/internal/core"
	"github.com/vovakirdan/array-heist/internal/metrics"
	"github.com/vovakirdan/array-heist/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.heist/host_key.
	HostKeyPath string

	// DBPath is the path to the results database. Empty disables it.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the gameplay config new sessions start with.
	Game config.HeistConfig

	// ConfigPath, if set, is watched and reloaded into Game while the
	// server runs. Running sessions keep the config they started with.
	ConfigPath string

	// MetricsAddress, if set, serves Prometheus metrics at /metrics.
	MetricsAddress string

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.heist/results.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultHeistConfig(),
	}
}

// SSHServer wraps a Wish SSH server that hosts one game per connection.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	logger  *log.Logger
	live    *config.Live
	watcher *config.Watcher
	metrics *metrics.Metrics
	http    *http.Server // nil without MetricsAddress

	closeOnce sync.Once
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "heist-ssh",
		})
	}

	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open results database", "error", err)
			// Continue without storage
		}
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		logger:  logger,
		live:    config.NewLive(cfg.Game),
		metrics: metrics.New(),
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", srv.metrics.Handler())
		srv.http = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".heist", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server

	if cfg.ConfigPath != "" {
		w, err := srv.live.WatchFile(cfg.ConfigPath, srv.onReload)
		if err != nil {
			srv.closeStore()
			return nil, err
		}
		srv.watcher = w
	}

	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:    pty.Window.Width,
		ScreenH:    pty.Window.Height,
		StartLevel: 1,
	}

	model := NewSessionModel(SessionOptions{
		Runtime: cfg,
		Config:  s.live.Get(),
		Store:   s.store,
		Logger:  s.logger,
		Metrics: s.metrics,
		Player:  sshSession.User(),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.metrics.SessionStarted()
		defer s.metrics.SessionEnded()

		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves SSH, and metrics and config reloads when configured, until
// ctx is done or one of them fails. It always shuts everything down before
// returning.
func (s *SSHServer) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting SSH server", "address", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})

	if s.http != nil {
		g.Go(func() error {
			s.logger.Info("serving metrics", "address", s.http.Addr)
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	if s.watcher != nil {
		g.Go(func() error {
			s.logger.Info("watching config", "path", s.config.ConfigPath)
			return s.watcher.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully stops the servers and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		errs = append(errs, err)
	}
	s.closeStore()

	return errors.Join(errs...)
}

func (s *SSHServer) closeStore() {
	s.closeOnce.Do(func() {
		if s.store != nil {
			s.store.Close()
		}
	})
}

// onReload logs config reloads from the watcher.
func (s *SSHServer) onReload(cfg config.HeistConfig, err error) {
	s.metrics.ConfigReloaded(err)
	if err != nil {
		s.logger.Warn("config reload failed, keeping previous config", "error", err)
		return
	}
	s.logger.Info("config reloaded",
		"step_delay_ms", cfg.Search.StepDelayMS,
		"flash_ms", cfg.Animation.FlashMS,
		"hints", cfg.Hints.Enabled,
	)
}

// Metrics returns the server's collectors.
func (s *SSHServer) Metrics() *metrics.Metrics {
	return s.metrics
}

// GameConfig returns the config new sessions start with.
func (s *SSHServer) GameConfig() config.HeistConfig {
	return s.live.Get()
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Runtime core.RuntimeConfig
	Config  config.HeistConfig
	Store   *storage.Store
	Logger  *log.Logger
	Metrics *metrics.Metrics
	Player  string
}

// screenKind is what a SessionModel is currently showing.
type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel runs the whole flow in one program: menu, game, best times,
// and back. It is the top-level model for SSH sessions, where there is only
// one program per connection.
type SessionModel struct {
	opts       SessionOptions
	runID      string
	screen     screenKind
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model that opens on the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	return SessionModel{
		opts:  opts,
		runID: uuid.NewString(),
		menu:  NewMenuModel(opts.Store, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode. The menu quits its own
// program on every choice, so those commands are replaced here.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.opts.Store, 1, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		return m, m.scoreboard.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		rt := m.opts.Runtime
		rt.StartLevel = selected.Level
		m.game = NewModel(Options{
			Runtime:  rt,
			Config:   m.opts.Config,
			Store:    m.opts.Store,
			Logger:   m.opts.Logger,
			Metrics:  m.opts.Metrics,
			Player:   m.opts.Player,
			RunID:    m.runID,
			Embedded: true,
		})
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Timers still in flight for this game are dropped by token.
	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// updateScores handles updates on the best-times board.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.opts.Store, m.opts.Runtime)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
