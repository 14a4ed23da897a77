package db

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DialectorFactory func(dsn string) gorm.Dialector

type Registry struct {
	mu        sync.RWMutex
	factories map[string]DialectorFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]DialectorFactory)}
}

func (r *Registry) Register(name string, f DialectorFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Dialector(name, dsn string) (gorm.Dialector, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown database driver: %s", name)
	}
	return f(dsn), nil
}

// Drivers holds the dialects the history reader can talk to. The automation
// engine usually runs on Postgres.
var Drivers = func() *Registry {
	r := NewRegistry()
	r.Register("postgres", func(dsn string) gorm.Dialector { return postgres.Open(dsn) })
	r.Register("mysql", func(dsn string) gorm.Dialector {
		return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true})
	})
	r.Register("sqlite", func(dsn string) gorm.Dialector { return sqlite.Open(dsn) })
	return r
}()

// Open connects lazily: gorm opens the pool without requiring the server to
// be up, so a down history database only degrades history reads.
func Open(driver, dsn string) (*gorm.DB, error) {
	d, err := Drivers.Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	gdb, err := gorm.Open(d, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Printf("history database configured driver=%s", driver)
	return gdb, nil
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
