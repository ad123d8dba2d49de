package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/rocketrun/internal/asset"
	"github.com/tomz197/rocketrun/internal/config"
	"github.com/tomz197/rocketrun/internal/loop"
)

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("GAME_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	catalog, err := asset.Open(config.GetEnv("ASSET_DIR", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load assets: %v\n", err)
		os.Exit(1)
	}

	collisions, err := config.GetEnvBool("GAME_COLLISIONS", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.RunOptions{
		Options: loop.DefaultOptions(),
		Assets:  catalog,
	}
	opts.Collisions = collisions
	opts.EffectSeed = uint64(time.Now().UnixNano())
	opts.Logger = logger

	logger.Info("game starting", "collisions", collisions)
	if err := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to path, or discards everything when path is empty since the
// terminal belongs to the game.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "game",
	})
	return logger, func() { _ = f.Close() }, nil
}
