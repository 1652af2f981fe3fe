package postgres

import (
	"fmt"
	"time"

	"github.com/xy-planning-network/storefront"
	"gorm.io/gorm"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

func (m Migration) execute(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return err
		}

		return tx.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, time.Now().Unix()).Error
	})
}

// MigrateUp ensures schema and the migrations table exist
// and runs, in order, each of migrations not yet recorded as run.
// MigrateUp stops at the first migration that fails.
func MigrateUp(db *DB, schema string, migrations []Migration) error {
	gdb := db.DB()
	if err := gdb.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("%w: failed creating schema %s: %s", storefront.ErrUnexpected, schema, err)
	}

	err := gdb.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("%w: failed creating migrations table: %s", storefront.ErrUnexpected, err)
	}

	var ran []string
	if err := gdb.Raw("SELECT key FROM migrations;").Scan(&ran).Error; err != nil {
		return fmt.Errorf("%w: failed fetching ran migrations: %s", storefront.ErrUnexpected, err)
	}

	for _, m := range pending(ran, migrations) {
		if err := m.execute(gdb); err != nil {
			return fmt.Errorf("%w: migration %s failed: %s", storefront.ErrUnexpected, m.Key, err)
		}
	}

	return nil
}

// pending returns migrations whose keys are not in ran, keeping their order.
func pending(ran []string, migrations []Migration) []Migration {
	done := make(map[string]struct{}, len(ran))
	for _, key := range ran {
		done[key] = struct{}{}
	}

	var toRun []Migration
	for _, m := range migrations {
		if _, ok := done[m.Key]; !ok {
			toRun = append(toRun, m)
		}
	}

	return toRun
}
