// Package summary prints the full spending summary of a user
package summary

import (
	"errors"

	"fjacquet/spend-rollup/cmd/common"
	"fjacquet/spend-rollup/cmd/root"

	"github.com/spf13/cobra"
)

var (
	userID string
	nowArg string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the spending summary of a user",
	Long: `Print the spending summary of a user: balance, totals, the daily, weekly,
monthly and yearly series, the current-period totals, historical averages and
the current month's breakdown by category.

An unknown user or a failed computation prints {"error": "..."} instead.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User id")
	Cmd.Flags().StringVar(&nowArg, "now", "", "Compute as of this date or RFC 3339 instant (default: current time)")
	_ = Cmd.MarkFlagRequired("user")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	engine := c.GetEngine()

	now, err := common.ParseNow(nowArg, engine.Location())
	if err != nil {
		return err
	}

	summary := engine.Summarize(cmd.Context(), userID, now)
	if err := common.WriteOutput(cmd, summary); err != nil {
		return err
	}
	if summary.Failed() {
		return errors.New(summary.Error)
	}
	return nil
}
