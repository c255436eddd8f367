package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bonsai-auction-api/internal/controller"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/service"
	"bonsai-auction-api/pkg/broker"
	"bonsai-auction-api/pkg/http_server"
	"bonsai-auction-api/pkg/postgres"
	"bonsai-auction-api/pkg/rediscache"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err.Error() == "no change" {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func Run() {
	serverAddressEnv := os.Getenv("SERVER_ADDRESS")
	dbConnEnv := os.Getenv("POSTGRES_CONN")
	databaseEnv := os.Getenv("POSTGRES_DATABASE")
	redisAddrEnv := os.Getenv("REDIS_ADDR")
	redisUserEnv := os.Getenv("REDIS_USER")
	redisPasswordEnv := os.Getenv("REDIS_PASSWORD")
	natsUrlEnv := os.Getenv("NATS_URL")

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(dbConnEnv)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: %w", err)
	}
	defer postgresDB.Close()

	log.Println("Running migrations...")
	runMigrations(postgresDB, databaseEnv)

	deps := service.Deps{}

	// Redis and NATS are optional collaborators. The engine degrades to
	// database-only behavior when their addresses are not configured.
	if redisAddrEnv != "" {
		redisClient, closeRedis, err := rediscache.NewRedis(redisAddrEnv, redisUserEnv, redisPasswordEnv)
		if err != nil {
			log.Fatal("Error occurred while connecting to redis: %w", err)
		}
		defer closeRedis()
		deps.Redis = redisClient
	}

	if natsUrlEnv != "" {
		publisher, closeBroker, err := broker.Connect(natsUrlEnv)
		if err != nil {
			log.Fatal("Error occurred while connecting to nats: %w", err)
		}
		defer closeBroker()
		deps.Events = publisher
	}

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, deps)
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, serverAddressEnv)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Fatal("Notify error: %w", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal("Shutdown error: %w", err)
	} else {
		log.Println("Successful shutdown")
	}
}
