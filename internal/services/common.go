package services

import (
	"database/sql"

	intconfig "hoponhub/internal/config"
)

func dbOr(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}
