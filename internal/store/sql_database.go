package store

import (
	"database/sql"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
