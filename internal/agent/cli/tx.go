package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	serr "github.com/IvanChernomyrdin/go-fintracker/internal/shared/errors"
	dto "github.com/IvanChernomyrdin/go-fintracker/internal/shared/models"
)

// NewTxCmd создаёт группу команд для работы с записями о доходах и расходах.
func NewTxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Доходы и расходы",
	}
	cmd.AddCommand(NewTxAddCmd(app))
	cmd.AddCommand(NewTxListCmd(app))
	return cmd
}

// NewTxAddCmd создаёт CLI-команду добавления записи.
//
// Знак суммы с типом не сверяется: сервер сохраняет значение как есть.
//
// Пример использования:
//
//	fintrack tx add --amount -12.50 --type expense --category food --note lunch
func NewTxAddCmd(app *App) *cobra.Command {
	var amount, kind, category, date, note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить доход или расход",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			amt, err := decimal.NewFromString(strings.TrimSpace(amount))
			if err != nil {
				return fmt.Errorf("%w: amount %q", serr.ErrInvalidInput, amount)
			}
			req := dto.CreateTransactionRequest{
				Amount:   amt,
				Type:     strings.ToLower(strings.TrimSpace(kind)),
				Category: category,
				Date:     date,
			}
			if cmd.Flags().Changed("note") {
				req.Note = &note
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			tx, err := c.CreateTransaction(cmd.Context(), token, req)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s %s (id=%s)\n", tx.Type, tx.Amount.String(), tx.Category, tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, e.g. 1500 or -12.50")
	cmd.Flags().StringVar(&kind, "type", "", "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "category label")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD or RFC 3339 (default now)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("type")

	return cmd
}

// NewTxListCmd создаёт CLI-команду вывода записей пользователя.
//
// По умолчанию выводит таблицу, с --json печатает ответ сервера.
func NewTxListCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список записей",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			c := NewAPIClient(app.ServerURL, app.Insecure)
			txs, err := c.ListTransactions(cmd.Context(), token)
			if err != nil {
				return explain(err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(txs)
			}
			return printTransactions(cmd.OutOrStdout(), txs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// printTransactions печатает таблицу записей.
func printTransactions(out io.Writer, txs []dto.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(out, "no transactions")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tCATEGORY\tNOTE\tID")
	for _, tx := range txs {
		note := ""
		if tx.Note != nil {
			note = *tx.Note
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Category, note, tx.ID)
	}
	return tw.Flush()
}
