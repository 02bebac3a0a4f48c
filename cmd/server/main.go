package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-service/auth"
	"github.com/jrsteele09/go-session-service/internal/config"
	"github.com/jrsteele09/go-session-service/internal/migrations"
	"github.com/jrsteele09/go-session-service/server"
	"github.com/jrsteele09/go-session-service/token"
	refreshrepofake "github.com/jrsteele09/go-session-service/token/refresh/repofake"
	pgsessionrepo "github.com/jrsteele09/go-session-service/token/refresh/repopg"
	redissessionrepo "github.com/jrsteele09/go-session-service/token/refresh/reporedis"
	fakeuserrepo "github.com/jrsteele09/go-session-service/users/repofake"
	pguserrepo "github.com/jrsteele09/go-session-service/users/repopg"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	if c.GetSecret() == "" {
		return errors.New("SECRET environment variable is required")
	}
	displayAppname(c.GetAppName())

	repos, err := buildRepos(context.Background(), c)
	if err != nil {
		return fmt.Errorf("buildRepos: %w", err)
	}

	codec := token.NewCodec(token.NewHMACSigner(c.GetSecret()))
	authService, err := auth.NewService(repos, codec, c)
	if err != nil {
		return fmt.Errorf("auth.NewService: %w", err)
	}

	handler, err := server.New(c, authService)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildRepos selects the backing stores from configuration. With no DSN the
// in-memory repositories are used, which suits development; a Redis address
// moves the refresh sessions to Redis with a TTL matching the token life.
func buildRepos(ctx context.Context, c config.Config) (auth.Repos, error) {
	repos := auth.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Sessions: refreshrepofake.NewFakeSessionRepo(),
	}

	if dsn := c.GetDatabaseDSN(); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return auth.Repos{}, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return auth.Repos{}, fmt.Errorf("db.PingContext: %w", err)
		}
		if err := migrations.Run(ctx, db); err != nil {
			return auth.Repos{}, fmt.Errorf("migrations.Run: %w", err)
		}
		repos.Users = pguserrepo.NewPostgresUserRepo(db)
		repos.Sessions = pgsessionrepo.NewPostgresSessionRepo(db)
	}

	if addr := c.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return auth.Repos{}, fmt.Errorf("redis ping: %w", err)
		}
		repos.Sessions = redissessionrepo.NewRedisSessionRepo(client, c.GetRefreshTokenLife())
	}

	return repos, nil
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
