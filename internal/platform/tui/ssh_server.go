package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/recover"

	"github.com/TheAppMakerPro/gyro-maze/internal/config"
	"github.com/TheAppMakerPro/gyro-maze/internal/game"
	"github.com/TheAppMakerPro/gyro-maze/internal/levels"
	"github.com/TheAppMakerPro/gyro-maze/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gyromaze/host_key.
	HostKeyPath string

	// DBPath is the path to the progress database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Settings carries the physics and input tuning every session gets.
	Settings Settings
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	cfg := config.DefaultConfig()
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.gyromaze/progress.db",
		IdleTimeout: 30 * time.Minute,
		Settings:    SettingsFromConfig(&cfg),
	}
}

// SSHServer wraps a Wish SSH server for the maze game.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	catalog *levels.Catalog
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gyromaze-ssh",
	})

	// A hand-built config may leave Settings zeroed
	if cfg.Settings.FPS == 0 {
		defaults := config.DefaultConfig()
		cfg.Settings = SettingsFromConfig(&defaults)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		catalog: levels.NewCatalog(),
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".gyromaze", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options. A panic in one session must not take
	// down the listener, so the Bubble Tea handler runs under recover.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			recover.MiddlewareWithLogger(logger, bubbletea.Middleware(srv.teaHandler)),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Each connection gets its own view of the shared database. A load
	// failure degrades to an ephemeral session rather than refusing it.
	var collab *storage.Collaborator
	if s.store != nil {
		c, err := storage.NewCollaborator(s.store, s.config.Settings.StartingLives, s.logger)
		if err != nil {
			s.logger.Warn("cannot load player state; progress will not be saved",
				"user", sshSession.User(), "error", err)
		} else {
			collab = c
		}
	}

	model := NewFlowModel(s.store, s.catalog, collab, s.config.Settings,
		pty.Window.Width, pty.Window.Height, s.logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
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

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// flowPhase names the screen a FlowModel is currently showing.
type flowPhase int

const (
	phaseSelect flowPhase = iota
	phasePlay
	phaseProgress
)

// FlowModel manages the full session flow: picker -> level -> picker,
// with the progress screen as a detour. This is the top-level model
// used for SSH sessions.
type FlowModel struct {
	store    *storage.Store
	catalog  *levels.Catalog
	collab   *storage.Collaborator // nil means ephemeral free play
	settings Settings
	logger   *log.Logger

	phase    flowPhase
	picker   LevelSelectModel
	play     *PlayModel
	progress ProgressModel

	width    int
	height   int
	quitting bool
}

// NewFlowModel creates a session flow starting at the level picker.
func NewFlowModel(store *storage.Store, catalog *levels.Catalog, collab *storage.Collaborator,
	settings Settings, width, height int, logger *log.Logger) FlowModel {
	if logger == nil {
		logger = log.Default()
	}

	m := FlowModel{
		store:    store,
		catalog:  catalog,
		collab:   collab,
		settings: settings,
		logger:   logger,
		width:    width,
		height:   height,
	}
	m.picker = NewLevelSelectModel(m.progression(), settings.MaxLevel, width, height)
	return m
}

// progression converts the typed collaborator pointer into the picker
// interface, keeping a nil pointer from turning into a non-nil interface.
func (m FlowModel) progression() Progression {
	if m.collab != nil {
		return m.collab
	}
	return nil
}

// Init initializes the flow.
func (m FlowModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the flow.
func (m FlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.phase {
	case phasePlay:
		if m.play != nil {
			return m.updatePlay(msg)
		}
	case phaseProgress:
		return m.updateProgress(msg)
	}
	return m.updateSelect(msg)
}

// updateSelect handles updates when the picker is showing.
func (m FlowModel) updateSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if picker, ok := newPicker.(LevelSelectModel); ok {
		m.picker = picker
	}

	// Check if user quit
	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Check if the progress screen was requested
	if m.picker.WantsProgress() {
		m.phase = phaseProgress
		m.progress = NewProgressModel(m.store, m.width, m.height)
		return m, m.progress.Init()
	}

	// Check if a level was selected
	if level := m.picker.Selected(); level > 0 {
		return m.startLevel(level)
	}

	return m, cmd
}

// startLevel builds a session for the level and switches to play mode.
// The picker's quit command is dropped in favor of the play init.
func (m FlowModel) startLevel(level int) (tea.Model, tea.Cmd) {
	var collab game.Collaborator
	var rec AttemptRecorder
	if m.collab != nil {
		collab = m.collab
		rec = m.collab
	}

	session, err := NewLevelSession(m.catalog, level, m.settings, collab)
	if err != nil {
		// Shouldn't happen for levels the picker offers
		m.logger.Warn("cannot build level", "level", level, "error", err)
		return m.toPicker()
	}

	play := NewPlayModel(session, rec, m.settings, m.width, m.height)
	m.play = &play
	m.phase = phasePlay
	return m, m.play.Init()
}

// continueAt switches play to play. The running tick chain survives the
// switch and drives the new session, so no second chain is armed; one
// would double the simulation rate.
func (m FlowModel) continueAt(level int) (tea.Model, tea.Cmd) {
	model, _ := m.startLevel(level)
	return model, nil
}

// toPicker rebuilds the picker and switches back to it. Stale ticks
// from the play phase land in the picker and die there.
func (m FlowModel) toPicker() (tea.Model, tea.Cmd) {
	m.phase = phaseSelect
	m.play = nil
	m.picker = NewLevelSelectModel(m.progression(), m.settings.MaxLevel, m.width, m.height)
	return m, m.picker.Init()
}

// updatePlay handles updates when a level is running.
func (m FlowModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(PlayModel); ok {
		m.play = &play
	}

	if m.play.Done() {
		level := m.play.Level()
		result := m.play.Result()
		switch {
		case result.Quit:
			m.quitting = true
			return m, tea.Quit

		case result.Restart:
			// A game over spent the bank; reload so the wallet's
			// life top-up applies before the retry.
			m.reloadCollaborator()
			return m.continueAt(level)

		case result.NextLevel > 0:
			return m.continueAt(result.NextLevel)

		default:
			return m.toPicker()
		}
	}

	return m, cmd
}

// reloadCollaborator refreshes the cached player state from the store.
func (m *FlowModel) reloadCollaborator() {
	if m.store == nil {
		return
	}
	c, err := storage.NewCollaborator(m.store, m.settings.StartingLives, m.logger)
	if err != nil {
		m.logger.Warn("cannot reload player state", "error", err)
		return
	}
	m.collab = c
}

// updateProgress handles updates when the progress screen is showing.
func (m FlowModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if progress, ok := newModel.(ProgressModel); ok {
		m.progress = progress
	}

	if m.progress.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.progress.IsGoingBack() {
		return m.toPicker()
	}

	return m, cmd
}

// View renders the current screen.
func (m FlowModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phasePlay:
		if m.play != nil {
			return m.play.View()
		}
	case phaseProgress:
		return m.progress.View()
	}
	return m.picker.View()
}
