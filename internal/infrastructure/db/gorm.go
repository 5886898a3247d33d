package db

import (
	"strings"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/ledger"
	"resto-pos-backend/internal/domain/staff"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type options struct {
	logLevel     logger.LogLevel
	maxOpenConns int
	maxIdleConns int
}

type Option func(*options)

func WithLogLevel(l logger.LogLevel) Option { return func(o *options) { o.logLevel = l } }

func WithPool(maxOpen, maxIdle int) Option {
	return func(o *options) {
		o.maxOpenConns = maxOpen
		o.maxIdleConns = maxIdle
	}
}

// ParseLogLevel maps GORM_LOG_LEVEL onto gorm's logger levels; unknown values mean warn.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// OpenGorm opens the production MySQL database.
func OpenGorm(dsn string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts...)
}

// OpenSQLite opens a file (or ":memory:") database for local runs. SQLite allows a single
// writer, so the pool is pinned to one connection.
func OpenSQLite(path string, opts ...Option) (*gorm.DB, error) {
	opts = append(opts, WithPool(1, 1))
	return OpenGormWithDialector(sqlite.Open(path), opts...)
}

func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{logLevel: logger.Warn, maxOpenConns: 30, maxIdleConns: 10}
	for _, fn := range opts {
		fn(&o)
	}

	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(o.logLevel),
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}
	gdb, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.maxOpenConns)
	sqlDB.SetMaxIdleConns(o.maxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Models lists the tables this service owns, in dependency order.
func Models() []any {
	return []any{
		&dayclose.DayOpening{},
		&dayclose.DayClose{},
		&dayclose.DayLockAudit{},
		&dayclose.DateGuard{},
	}
}

// CollaboratorModels are the users, roles, orders and payments tables owned by
// other POS services. Only local sqlite databases and tests create them here.
func CollaboratorModels() []any {
	return []any{
		&staff.Role{},
		&staff.User{},
		&ledger.Order{},
		&ledger.Payment{},
	}
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(Models()...)
}

// MigrateWithCollaborators creates the collaborator tables before the owned ones.
func MigrateWithCollaborators(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(CollaboratorModels()...); err != nil {
		return err
	}
	return Migrate(gdb)
}
