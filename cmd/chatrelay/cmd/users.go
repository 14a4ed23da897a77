package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/suPer8Hu/chatrelay/internal/chat"
	"github.com/suPer8Hu/chatrelay/internal/config"
	"github.com/suPer8Hu/chatrelay/internal/users"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users and their chat counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		st, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		all := users.NewRegistry(st).List(ctx)
		chats := chat.NewRegistry(st)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tCHATS\tLAST LOGIN")
		for _, u := range all {
			fmt.Fprintf(w, "%s\t%d\t%s\n", u.Username, len(chats.ListByUser(ctx, u.ID)), u.LastLogin.Format(time.RFC3339))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println(color.CyanString("%d user(s)", len(all)))
		return nil
	},
}
