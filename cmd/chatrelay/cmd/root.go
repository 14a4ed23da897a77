package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/chatrelay/internal/config"
	"github.com/suPer8Hu/chatrelay/internal/db"
	"github.com/suPer8Hu/chatrelay/internal/store"
	"github.com/suPer8Hu/chatrelay/internal/store/redisstore"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "chatrelay",
	Short:        "Chat front end that relays messages to an automation webhook",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkHistoryCmd)
	rootCmd.AddCommand(usersCmd)
}

// openStore returns the record store for the configured backend and a func
// releasing it.
func openStore(cfg config.Config) (*store.Store, func(), error) {
	switch cfg.RecordBackend {
	case "redis":
		b, err := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisURL(), err)
		}
		log.Printf("[store] redis %s prefix=%q", cfg.RedisURL(), cfg.RedisPrefix)
		return store.New(b), func() { _ = b.Close() }, nil
	default:
		log.Printf("[store] files in %s", cfg.DataDir)
		return store.New(store.NewFileBackend(cfg.DataDir)), func() {}, nil
	}
}

func openHistoryDB(cfg config.Config) (*gorm.DB, error) {
	return db.Open(cfg.HistoryDBDriver, cfg.HistoryDSN())
}
