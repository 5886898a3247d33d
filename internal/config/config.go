package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string

	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisEnabled bool
	RedisAddr    string
	RedisDB      int

	IdempTTLSecs    int
	DateLockTTLSecs int

	LogLevel     string
	LogFormat    string
	GormLogLevel string
	AutoMigrate  bool

	VarianceTolerance     decimal.Decimal
	CashierRoles          []string
	AllowOpeningOverwrite bool
	ReportMaxDays         int

	toleranceErr error
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the environment, after merging a .env file from the working directory if present.
// Variables already set in the environment win over .env.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		SQLitePath: getenv("SQLITE_PATH", "dayclose.db"),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "restopos"),
		MySQLUser:  getenv("MYSQL_USER", "restopos"),
		MySQLPass:  getenv("MYSQL_PASS", "restopos"),

		RedisEnabled: getbool("REDIS_ENABLED", true),
		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),

		IdempTTLSecs:    getint("IDEMPOTENCY_TTL_SECONDS", 300),
		DateLockTTLSecs: getint("DATE_LOCK_TTL_SECONDS", 30),

		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "json"),
		GormLogLevel: getenv("GORM_LOG_LEVEL", "warn"),
		AutoMigrate:  getbool("AUTO_MIGRATE", true),

		CashierRoles:          splitList(getenv("CASHIER_ROLES", "cashier")),
		AllowOpeningOverwrite: getbool("ALLOW_OPENING_OVERWRITE", true),
		ReportMaxDays:         getint("REPORT_MAX_DAYS", 366),
		VarianceTolerance:     decimal.Zero,
	}
	if v := strings.TrimSpace(os.Getenv("VARIANCE_TOLERANCE")); v != "" {
		tol, err := decimal.NewFromString(v)
		if err != nil {
			c.toleranceErr = fmt.Errorf("invalid VARIANCE_TOLERANCE %q: %w", v, err)
		} else {
			c.VarianceTolerance = tol
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.toleranceErr != nil {
		return c.toleranceErr
	}
	if c.VarianceTolerance.IsNegative() {
		return errors.New("VARIANCE_TOLERANCE must not be negative")
	}
	if len(c.CashierRoles) == 0 {
		return errors.New("CASHIER_ROLES must name at least one role")
	}
	if c.ReportMaxDays <= 0 {
		return errors.New("REPORT_MAX_DAYS must be positive")
	}
	if c.RedisEnabled && c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) DateLockTTL() time.Duration { return time.Duration(c.DateLockTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME; loc=UTC keeps business dates from shifting
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
