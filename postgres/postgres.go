package postgres

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/storefront"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a PostgreSQL database.
type CxnConfig struct {
	IsTestDB bool
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Connect creates a database connection through GORM according to config.
func Connect(config *CxnConfig, env storefront.Environment) (*DB, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: no connection config", storefront.ErrBadConfig)
	}

	// https://gorm.io/docs/logger.html
	c := logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	}

	if env.IsDevelopment() {
		c.Colorful = true
	}

	db, err := gorm.Open(postgres.Open(buildCxnStr(config)), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), c),
		NamingStrategy: schema.NamingStrategy{
			NameReplacer: strings.NewReplacer("Table", ""),
		},
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
	}

	if config.IsTestDB {
		if err := db.Exec("DROP SCHEMA IF EXISTS public CASCADE;").Error; err != nil {
			return nil, fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
		}
	}

	return NewDB(db), nil
}

func buildCxnStr(config *CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	if config.SSLMode == "" {
		// PG Docs: https://www.postgresql.org/docs/current/libpq-ssl.html#LIBPQ-SSL-SSLMODE-STATEMENTS
		config.SSLMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		config.SSLMode,
	)
}

// WipeDB truncates every table in schema except the migrations table,
// so migrations already run are not run again.
func WipeDB(db *DB, schema string) error {
	var tables []string
	err := db.
		Table("information_schema.tables").
		Select("table_name").
		Where("table_schema = ?", schema).
		Where("table_type <> ?", "VIEW").
		Where("table_name <> ?", "migrations").
		Find(&tables)
	if errors.Is(err, storefront.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	qualified := make([]string, len(tables))
	for i, t := range tables {
		qualified[i] = schema + "." + t
	}

	err = db.DB().Exec(fmt.Sprintf("TRUNCATE %s CASCADE;", strings.Join(qualified, ", "))).Error
	if err != nil {
		return fmt.Errorf("%w: %s", storefront.ErrUnexpected, err)
	}

	return nil
}
