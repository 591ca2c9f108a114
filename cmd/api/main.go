package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cursinhoinsper/plataforma/internal/auth"
	"github.com/cursinhoinsper/plataforma/internal/config"
	internalhttp "github.com/cursinhoinsper/plataforma/internal/http"
	"github.com/cursinhoinsper/plataforma/internal/mail"
	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	mongoClient, err := repo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(closeCtx)
	}()

	db := mongoClient.Database(cfg.MongoDB)
	usuarios := repo.NewUsuarios(db)
	sessoes := repo.NewSessoes(db)
	avisos := repo.NewAvisos(db)
	grade := repo.NewGrade(db)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis parse: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(usuarios, sessoes, jwtManager)
	statsService := service.NewStatsService(usuarios, redisClient)

	var mailer mail.Mailer
	if m := mail.NewSMTPMailer(cfg.SMTP); m != nil {
		mailer = m
	}

	// dono do ciclo de vida do sweeper: inicia uma vez aqui, para no teardown
	sweeper := service.NewSweeper(sessoes, cfg.SweepInterval, log.Logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	handler := internalhttp.NewHandler(authService, statsService, usuarios, avisos, grade, mailer)
	router := internalhttp.NewRouter(cfg, handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
