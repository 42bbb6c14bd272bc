// Package server wires the slot server: configuration, the storage backend
// holding every user's slots, signal handling and the gRPC endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/walletcore/internal/backend"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/server/auth"
	"github.com/dmitrijs2005/walletcore/internal/server/config"
	"github.com/dmitrijs2005/walletcore/internal/storage"

	gs "github.com/dmitrijs2005/walletcore/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	backend      storage.Backend
	closeBackend backend.CloseFunc
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	b, closeFn, err := backend.Open(ctx, c.Storage, storage.RuntimeNative, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return &App{config: c, logger: logger, backend: b, closeBackend: closeFn}, nil
}

// MintToken issues an access token for userID, valid for the configured
// access token lifetime.
func (app *App) MintToken(userID string) (string, error) {
	if err := gs.ValidateName(userID); err != nil {
		return "", fmt.Errorf("user id: %w", err)
	}
	return auth.GenerateToken(userID, []byte(app.config.SecretKey), app.config.AccessTokenValidityDuration)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewSlotServer(app.config.EndpointAddrGRPC, app.logger, app.backend, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the backend.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage.Kind)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.closeBackend(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
}
