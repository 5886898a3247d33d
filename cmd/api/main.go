package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpadp "resto-pos-backend/internal/adapter/http"
	"resto-pos-backend/internal/adapter/middleware"
	"resto-pos-backend/internal/adapter/repository/mysql"
	"resto-pos-backend/internal/config"
	"resto-pos-backend/internal/infrastructure/cache"
	infradb "resto-pos-backend/internal/infrastructure/db"
	"resto-pos-backend/internal/infrastructure/logging"
	"resto-pos-backend/internal/usecase/dayclosing"
	"resto-pos-backend/internal/usecase/report"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := openDB(cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DBDriver).Fatal("open database")
	}
	if cfg.AutoMigrate {
		if err := migrate(gdb, cfg); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()

	repos := mysql.NewRepos(gdb)
	checks := map[string]httpadp.Pinger{"database": sqlDB.PingContext}
	opts := []dayclosing.Option{
		dayclosing.WithLogger(log),
		dayclosing.WithReporter(report.NewProjector(repos.Closes, repos.Audits, cfg.VarianceTolerance, cfg.ReportMaxDays)),
	}

	var idem echo.MiddlewareFunc
	if cfg.RedisEnabled {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.WithError(err).WithField("addr", cfg.RedisAddr).Fatal("open redis")
		}
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		opts = append(opts, dayclosing.WithDateLocker(cache.NewDateLocker(rdb, cfg.DateLockTTL())))
		idem = idempotency(rdb, cfg, log)
	} else {
		log.Warn("redis disabled: no idempotency keys, date locks fall back to row locks")
	}

	uc := dayclosing.NewUsecase(repos, mysql.NewGormUoW(gdb), dayclosing.Policy{
		Tolerance:             cfg.VarianceTolerance,
		CashierRoles:          cfg.CashierRoles,
		AllowOpeningOverwrite: cfg.AllowOpeningOverwrite,
	}, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestLogger(log), echomw.Recover())
	httpadp.RegisterRoutes(e, httpadp.NewHandler(checks), httpadp.NewDayClosingHandler(uc, log), idem)

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	level := infradb.WithLogLevel(infradb.ParseLogLevel(cfg.GormLogLevel))
	if cfg.DBDriver == config.DriverSQLite {
		return infradb.OpenSQLite(cfg.SQLitePath, level)
	}
	return infradb.OpenGorm(cfg.MySQLDSN(), level)
}

// migrate leaves users, roles, orders and payments alone on mysql, where other
// services own them.
func migrate(gdb *gorm.DB, cfg *config.Config) error {
	if cfg.DBDriver == config.DriverSQLite {
		return infradb.MigrateWithCollaborators(gdb)
	}
	return infradb.Migrate(gdb)
}

func idempotency(rdb *redis.Client, cfg *config.Config, log *logrus.Logger) echo.MiddlewareFunc {
	return middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log)
}
