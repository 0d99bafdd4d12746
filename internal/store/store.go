package store

import (
	"database/sql"

	"github.com/stagedoor/greenroom/internal/database"
)

// Store holds all sub-stores used by the application.
type Store struct {
	DB          *sql.DB
	Dialect     database.Dialect
	Productions ProductionStore
	Members     MemberStore
	Awards      AwardStore
	Products    ProductStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB, d database.Dialect) *Store {
	return &Store{
		DB:          db,
		Dialect:     d,
		Productions: NewSQLProductionStore(db, d),
		Members:     NewSQLMemberStore(db, d),
		Awards:      NewSQLAwardStore(db, d),
		Products:    NewSQLProductStore(db, d),
	}
}
