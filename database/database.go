// Package database is the durable correlation store: payment hash to wallet
// payment-request mappings, kept in two independent Postgres tables.
package database

import (
	"database/sql"
	"fmt"
	"path/filepath"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mintgate/sparkd/database/models"
)

type Database struct {
	host     string
	username string
	password string
	database string
	port     uint32
	embedded *embeddedpostgres.EmbeddedPostgres
	orm      *gorm.DB
}

// NewDatabase opens the correlation store. The host "embedded" boots an
// embedded Postgres under dataPath (development and tests); anything else
// dials an external server. The returned close function stops the embedded
// server unless keepAlive is set.
func NewDatabase(username, password, dbname string, port uint32, dataPath, host string, keepAlive bool) (*Database, func() error, error) {
	db := &Database{
		host:     host,
		username: username,
		password: password,
		database: dbname,
		port:     port,
	}

	if host == "embedded" {
		db.embedded = embeddedpostgres.NewDatabase(
			embeddedpostgres.DefaultConfig().
				Username(username).
				Password(password).
				Database(dbname).
				Port(port).
				RuntimePath(filepath.Join(dataPath, "postgres")).
				DataPath(filepath.Join(dataPath, "postgres", "data")),
		)
		if err := db.embedded.Start(); err != nil {
			return nil, nil, fmt.Errorf("starting embedded database: %w", err)
		}
		log.Info("✅ embedded database started")
	}

	if err := db.ping(); err != nil {
		_ = db.stopEmbedded()

		return nil, nil, err
	}

	orm, err := gorm.Open(postgres.Open(db.GetConnectionURL()), &gorm.Config{})
	if err != nil {
		_ = db.stopEmbedded()

		return nil, nil, fmt.Errorf("connecting GORM: %w", err)
	}
	db.orm = orm

	closeDb := func() error {
		if keepAlive {
			return nil
		}

		return db.stopEmbedded()
	}

	return db, closeDb, nil
}

// GetConnectionURL builds the Postgres connection string. Embedded databases
// always listen on localhost.
func (d *Database) GetConnectionURL() string {
	host := d.host
	if host == "embedded" {
		host = "localhost"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", d.username, d.password, host, d.port, d.database)
}

func (d *Database) ping() error {
	conn, err := sql.Open("postgres", d.GetConnectionURL())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	return nil
}

func (d *Database) stopEmbedded() error {
	if d.embedded == nil {
		return nil
	}

	return d.embedded.Stop()
}

func (d *Database) ORM() *gorm.DB {
	return d.orm
}

// MigrateDatabase creates or updates the quote tables.
func (d *Database) MigrateDatabase() error {
	return d.orm.AutoMigrate(&models.MintQuote{}, &models.MeltQuote{})
}
