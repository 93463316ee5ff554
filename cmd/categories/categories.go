// Package categories prints the per-category totals of a month
package categories

import (
	"fmt"
	"time"

	"fjacquet/spend-rollup/cmd/common"
	"fjacquet/spend-rollup/cmd/root"

	"github.com/spf13/cobra"
)

var (
	userID string
	nowArg string
	year   int
	month  int
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the per-category totals of a month",
	Long: `Print the signed sum of amounts per category for one calendar month.
Defaults to the month containing --now.`,
	RunE: categoriesFunc,
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User id")
	Cmd.Flags().StringVar(&nowArg, "now", "", "Reference date used when --year/--month are not set")
	Cmd.Flags().IntVar(&year, "year", 0, "Calendar year")
	Cmd.Flags().IntVar(&month, "month", 0, "Calendar month (1-12)")
	_ = Cmd.MarkFlagRequired("user")
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	engine := c.GetEngine()

	now, err := common.ParseNow(nowArg, engine.Location())
	if err != nil {
		return err
	}
	y, m := now.Year(), now.Month()
	if year != 0 {
		y = year
	}
	if month != 0 {
		if month < 1 || month > 12 {
			return fmt.Errorf("--month must be between 1 and 12, got %d", month)
		}
		m = time.Month(month)
	}

	sums, err := engine.Categories(cmd.Context(), userID, y, m)
	if err != nil {
		return err
	}
	return common.WriteOutput(cmd, sums)
}
