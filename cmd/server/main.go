package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-catalog-server/audit"
	"github.com/jrsteele09/go-catalog-server/auth"
	"github.com/jrsteele09/go-catalog-server/internal/config"
	fakeproductrepo "github.com/jrsteele09/go-catalog-server/products/repofake"
	"github.com/jrsteele09/go-catalog-server/registry"
	"github.com/jrsteele09/go-catalog-server/server"
	"github.com/jrsteele09/go-catalog-server/store/postgres"
	"github.com/jrsteele09/go-catalog-server/token"
	fakeuserrepo "github.com/jrsteele09/go-catalog-server/users/repofake"
)

func main() {
	_ = godotenv.Load()

	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	displayAppname(c.GetAppName())

	deps, cleanup, err := buildDeps(context.Background(), c)
	if err != nil {
		return err
	}
	defer cleanup()

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, deps)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildDeps wires storage, the refresh registry and the auth service
// from the environment. With no DATABASE_URL everything runs in memory,
// which is enough for local development.
func buildDeps(ctx context.Context, c config.Config) (server.Deps, func(), error) {
	deps := server.Deps{}
	cleanup := func() {}

	if dsn := c.GetDatabaseURL(); dsn != "" {
		if err := postgres.RunMigrations(ctx, dsn); err != nil {
			return deps, cleanup, fmt.Errorf("postgres.RunMigrations: %w", err)
		}
		store, err := postgres.New(ctx, dsn)
		if err != nil {
			return deps, cleanup, fmt.Errorf("postgres.New: %w", err)
		}
		cleanup = store.Close
		deps.Users = store.Users()
		deps.Products = store.Products()
		deps.Audit = store.Audit()

		if auditDSN := c.GetAuditDatabaseURL(); auditDSN != dsn {
			auditPool, err := pgxpool.New(ctx, auditDSN)
			if err != nil {
				return deps, cleanup, fmt.Errorf("audit pgxpool.New: %w", err)
			}
			storeClose := cleanup
			cleanup = func() { auditPool.Close(); storeClose() }
			deps.Audit = postgres.NewAuditSink(auditPool)
		}
	} else {
		log.Printf("DATABASE_URL not set, using in-memory storage\n")
		deps.Users = fakeuserrepo.NewFakeUserRepo()
		deps.Products = fakeproductrepo.NewFakeProductRepo()
		deps.Audit = audit.NopSink{}
	}

	var reg registry.Registry = registry.NewInMemoryRegistry()
	if addr := c.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return deps, cleanup, fmt.Errorf("redis ping: %w", err)
		}
		reg = registry.NewRedisRegistry(client, c.GetRefreshTokenExpiry())
		log.Printf("Refresh token registry backed by redis at %s\n", addr)
	}

	accessCodec := token.NewCodec(c.GetAccessTokenSecret(), c.GetAccessTokenExpiry())
	refreshCodec := token.NewCodec(c.GetRefreshTokenSecret(), c.GetRefreshTokenExpiry())
	deps.Auth = auth.NewService(deps.Users, reg, accessCodec, refreshCodec,
		auth.WithBcryptCost(c.GetBcryptCost()))

	return deps, cleanup, nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
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
