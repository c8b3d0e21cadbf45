package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the pure-Go "sqlite" driver used below.
	_ "modernc.org/sqlite"
)

// Connect opens a gorm connection. Postgres DSNs are recognised by scheme;
// anything else is treated as a SQLite path (":memory:" included), which keeps
// local development and tests free of external services.
//
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey on postgres. The pure-Go sqlite driver's constraint
// errors are not covered by that translation; repositories recognise them
// through repository.IsUniqueViolation instead.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}
