// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/truco/service/internal/auth"
	"github.com/jason-s-yu/truco/service/internal/cache"
	"github.com/jason-s-yu/truco/service/internal/config"
	"github.com/jason-s-yu/truco/service/internal/game"
	"github.com/jason-s-yu/truco/service/internal/handlers"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for HOST_PASSWORD_HASH and exit")
	noConsole := flag.Bool("no-console", false, "disable the stdin host console")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("config: %v", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, !*noConsole); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger, withConsole bool) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g := game.NewTrucoGame(seed, log)
	g.OnGameEnd = func(gameID uuid.UUID, winner int, scores [2]int) {
		log.WithFields(logrus.Fields{"game_id": gameID, "winner": winner, "scores": scores}).Info("final score")
		if withConsole {
			printResult(winner, scores)
		}
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		g.Presence = cache.NewPresence(rdb, cfg.PresenceTTL)
		log.WithField("addr", cfg.RedisAddr).Info("presence tracking enabled")
	}

	hub := handlers.NewHub(g, cfg.AllowedOrigins, log)

	var host *handlers.HostHandler
	if cfg.HostEnabled() {
		tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.HostTokenTTL)
		if err != nil {
			return err
		}
		host = handlers.NewHostHandler(g, cfg.HostPasswordHash, tokens, log)
		log.Info("host endpoints enabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(hub, host),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if withConsole {
		go newConsole(g, log).run(ctx, os.Stdin)
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "game_id": g.ID}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
