package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"southern-cross/frms/internal/db"
	"southern-cross/frms/internal/logging"
	"southern-cross/frms/internal/routes"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Local development config; the file is optional
	_ = godotenv.Load()

	// Initialize structured logging
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("FRMS service starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	orm, err := db.InitPostgresORM(dsn)
	if err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	if err := db.Migrate(orm); err != nil {
		logging.Error("Failed to migrate schema", "error", err.Error())
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	upSince := time.Now()

	// Initialize router with Chi
	router := routes.RegisterRoutes(upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	listenPort := os.Getenv("PORT")
	if listenPort == "" {
		listenPort = "8080"
	}

	logging.Info("Server starting",
		"port", listenPort,
		"environment", appEnv,
	)

	log.Fatal(http.ListenAndServe(":"+listenPort, mux))
}
