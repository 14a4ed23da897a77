package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/suPer8Hu/chatrelay/internal/config"
	"github.com/suPer8Hu/chatrelay/internal/db"
	"github.com/suPer8Hu/chatrelay/internal/history"
)

var checkHistoryCmd = &cobra.Command{
	Use:   "check-history",
	Short: "Test the connection to the chat history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Driver: %s\n", cfg.HistoryDBDriver)
		fmt.Printf("Table:  %s\n", cfg.HistoryTable)

		gdb, err := openHistoryDB(cfg)
		if err != nil {
			fmt.Println("Status: " + color.RedString("FAIL") + " " + err.Error())
			return err
		}
		defer db.Close(gdb)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if err := history.NewReader(gdb, cfg.HistoryTable).Ping(ctx); err != nil {
			fmt.Println("Status: " + color.RedString("FAIL") + " " + err.Error())
			return err
		}
		fmt.Println("Status: " + color.GreenString("OK"))
		return nil
	},
}
