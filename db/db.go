package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// OGDB runs the organic groups queries against a PostgreSQL database. Gorm
// shares the DB connection pool and builds the queries.
type OGDB struct {
	DB   *sql.DB
	Gorm *gorm.DB
	Log  *zerolog.Logger
}

// NewOGDB opens the database named by DATABASE_URL and checks it is reachable.
func NewOGDB(log *zerolog.Logger) (*OGDB, error) {
	// Get the database connection string from the environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Error().Msg("DATABASE_URL environment variable is not set")
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	// Open the database connection
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		db.Close()
		return nil, err
	}

	gormDB, err := OpenGorm(db, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open gorm session")
		db.Close()
		return nil, err
	}

	return &OGDB{
		DB:   db,
		Gorm: gormDB,
		Log:  log,
	}, nil
}

// OpenGorm wraps an existing connection pool in a gorm session that logs
// through log.
func OpenGorm(sqlDB *sql.DB, log *zerolog.Logger) (*gorm.DB, error) {
	gormLog := logger.New(gormLogWriter{log: log}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("error opening gorm session: %w", err)
	}
	return db, nil
}

// Close closes the connection pool shared by DB and Gorm.
func (o *OGDB) Close() error {
	if err := o.DB.Close(); err != nil {
		return err
	}
	o.Log.Info().Msg("database connection closed")
	o.DB = nil
	o.Gorm = nil

	return nil
}

// Migrate creates the users, og_membership, og_role and og_users_roles
// tables. Production sites get them from the CMS; this is for local
// development and tests.
func (o *OGDB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: o.Log})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, o.DB, "migrations"); err != nil {
		o.Log.Error().Err(err).Msg("error running migrations")
		return fmt.Errorf("error running migrations: %w", err)
	}

	o.Log.Info().Msg("Tables initialized successfully")
	return nil
}

type gooseLogger struct {
	log *zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

type gormLogWriter struct {
	log *zerolog.Logger
}

func (w gormLogWriter) Printf(format string, v ...interface{}) {
	w.log.Warn().Str("component", "gorm").Msgf(format, v...)
}
