package db

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB is the shared sqlx handle used for the raw-query paths (API keys,
// health check ping).
var DB *sqlx.DB

// InitPostgres connects from the PG_* environment, retrying while the
// database container comes up.
func InitPostgres() error {

	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	var err error

	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err

}
