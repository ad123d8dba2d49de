package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tomz197/rocketrun/internal/asset"
	"github.com/tomz197/rocketrun/internal/config"
	"github.com/tomz197/rocketrun/internal/draw"
	"github.com/tomz197/rocketrun/internal/loop"
	"github.com/tomz197/rocketrun/internal/metrics"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	sessionDrainTime   = 15 * time.Second
)

// gameServer holds what all sessions share: the read-only asset catalog,
// metrics and the shutdown notice.
type gameServer struct {
	logger     *log.Logger
	catalog    *asset.Catalog
	metrics    *metrics.Collector
	collisions bool

	shutdown     chan struct{}
	shutdownOnce sync.Once
	sessions     sync.WaitGroup
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	metricsAddr := config.GetEnv("METRICS_ADDR", "")
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	catalog, err := asset.Open(config.GetEnv("ASSET_DIR", ""))
	if err != nil {
		logger.Fatal("failed to load assets", "err", err)
	}
	collisions, err := config.GetEnvBool("GAME_COLLISIONS", true)
	if err != nil {
		logger.Fatal("bad config", "err", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		logger.Fatal("failed to register metrics", "err", err)
	}

	gs := &gameServer{
		logger:     logger,
		catalog:    catalog,
		metrics:    collector,
		collisions: collisions,
		shutdown:   make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gs.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, metricsAddr, reg, logger); err != nil {
				logger.Error("metrics server", "err", err)
			}
		}()
	}

	logger.Info("starting SSH server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	// Show connected players the shutdown notice and give them time to leave.
	gs.announceShutdown()
	if !gs.waitSessions(sessionDrainTime) {
		logger.Warn("sessions still open after drain", "timeout", sessionDrainTime)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs one game per session.
func (gs *gameServer) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.New()
		logger := gs.logger.With("session", id.String(), "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		gs.sessions.Add(1)
		defer gs.sessions.Done()
		gs.metrics.SessionOpened()
		defer gs.metrics.SessionClosed()

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.RunOptions{
			Options:      loop.DefaultOptions(),
			Assets:       gs.catalog,
			TermSizeFunc: sizeTracker.getSize,
			Renderer:     lipgloss.NewRenderer(sess),
			IdleTimeout:  true,
			Shutdown:     gs.shutdown,
		}
		opts.Collisions = gs.collisions
		opts.EffectSeed = binary.BigEndian.Uint64(id[:8])
		opts.Observer = gs.metrics
		opts.Logger = logger

		if err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, opts); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// announceShutdown switches every session to the shutdown screen.
func (gs *gameServer) announceShutdown() {
	gs.shutdownOnce.Do(func() {
		close(gs.shutdown)
	})
}

// waitSessions waits for all sessions to end, up to timeout. On timeout the
// waiting goroutine is left behind and exits with the last session; the
// server only calls this once, right before the process exits.
func (gs *gameServer) waitSessions(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		gs.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
