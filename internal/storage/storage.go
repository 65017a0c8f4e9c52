package storage

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/carson-networks/spendwatch/internal/config"
	"github.com/carson-networks/spendwatch/internal/service"
)

// Storage is the Postgres implementation of the service layer's store
// contracts. All schema naming differences live here; the service layer only
// sees the canonical models.
type Storage struct {
	DB *sql.DB
}

var _ service.StorageBackend = (*Storage)(nil)

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	return &Storage{DB: db}
}
