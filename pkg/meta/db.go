package meta

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/utkarsh5026/libra/pkg/common/fileops"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// slowQuery is the duration above which gorm reports a statement as slow
const slowQuery = 200 * time.Millisecond

// DB wraps the gorm connection to the repository's metadata database
type DB struct {
	conn *gorm.DB
}

// Options tunes Open
type Options struct {
	// LogSQL echoes every statement through gorm's logger
	LogSQL bool
}

// Open opens (creating if needed) the sqlite database at path and migrates the schema
func Open(ctx context.Context, path scpath.AbsolutePath, opts Options) (*DB, error) {
	if e := fileops.EnsureParentDir(path); e != nil {
		return nil, e
	}

	conn, e := gorm.Open(sqlite.Open(path.String()), &gorm.Config{
		Logger:         newGormLogger(opts.LogSQL),
		TranslateError: true,
	})
	if e != nil {
		return nil, fmt.Errorf("failed to open metadata database: %w", e)
	}

	sqlDB, e := conn.DB()
	if e != nil {
		return nil, e
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY inside one process
	sqlDB.SetMaxOpenConns(1)

	if e := sqlDB.PingContext(ctx); e != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("metadata database ping failed: %w", e)
	}

	db := &DB{conn: conn}
	if e := migrate(db); e != nil {
		_ = sqlDB.Close()
		return nil, e
	}
	return db, nil
}

// migrate runs on every Open
var migrate = (*DB).Migrate

// newGormLogger sends gorm's output through slog so SQL never lands on stdout
func newGormLogger(logSQL bool) gormlogger.Interface {
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}
	return gormlogger.New(logger.NewPrinter("gorm"), gormlogger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// NewWithConn wraps an existing gorm connection
func NewWithConn(conn *gorm.DB) *DB {
	return &DB{conn: conn}
}

// Migrate creates or updates the tables
func (d *DB) Migrate() error {
	if e := d.conn.AutoMigrate(&RefRow{}, &MergeRequestRow{}); e != nil {
		return fmt.Errorf("auto migration failed: %w", e)
	}
	return nil
}

// Conn returns the gorm connection
func (d *DB) Conn() *gorm.DB {
	return d.conn
}

// Close closes the underlying connection pool
func (d *DB) Close() error {
	sqlDB, e := d.conn.DB()
	if e != nil {
		return e
	}
	return sqlDB.Close()
}
