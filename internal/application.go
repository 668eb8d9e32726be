package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-bot/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-bot/transport/rest"
	"github.com/rocketscienceinc/tictactoe-bot/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaultDifficulty, err := tictactoe.ParseDifficulty(conf.Bot.DefaultDifficulty)
	if err != nil {
		return fmt.Errorf("invalid bot default difficulty: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Game.TTL)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)

	gameService := service.NewGameService(gameRepo)
	botService := service.NewBotService(logger, tictactoe.NewEngine(nil))
	resultService := service.NewResultService(resultRepo)

	gameManager := usecase.NewGameManager(logger, gameService, botService, resultService, defaultDifficulty)

	group, groupCtx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager, conf.CORS.AllowedOrigins).Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, conf.CORS.AllowedOrigins)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	// either server failing cancels groupCtx and stops the other one
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	return nil
}
