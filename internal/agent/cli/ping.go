package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCmd создаёт CLI-команду проверки доступности сервера.
func NewPingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Проверить доступность сервера",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewAPIClient(app.ServerURL, app.Insecure)
			if err := c.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", c.BaseURL())
			return nil
		},
	}
}
