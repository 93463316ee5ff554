// Package series prints one bucket series of a user
package series

import (
	"fjacquet/spend-rollup/cmd/common"
	"fjacquet/spend-rollup/cmd/root"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"

	"github.com/spf13/cobra"
)

var (
	userID      string
	nowArg      string
	granularity string
)

// Cmd represents the series command
var Cmd = &cobra.Command{
	Use:   "series",
	Short: "Print one spending series of a user",
	Long: `Print the spent/earned/net buckets of one granularity, most recent first:
7 days, 12 weeks (starting Sunday), 12 months or 5 years.`,
	RunE: seriesFunc,
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User id")
	Cmd.Flags().StringVar(&nowArg, "now", "", "Compute as of this date or RFC 3339 instant (default: current time)")
	Cmd.Flags().StringVarP(&granularity, "granularity", "g", string(models.Monthly), "daily, weekly, monthly or yearly")
	_ = Cmd.MarkFlagRequired("user")
}

func seriesFunc(cmd *cobra.Command, args []string) error {
	g, err := models.ParseGranularity(granularity)
	if err != nil {
		return err
	}

	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	engine := c.GetEngine()

	now, err := common.ParseNow(nowArg, engine.Location())
	if err != nil {
		return err
	}

	buckets, err := engine.Series(cmd.Context(), userID, g, now)
	if err != nil {
		root.Log.WithError(err).Error("Failed to compute series",
			logging.Field{Key: logging.FieldUserID, Value: userID},
			logging.Field{Key: logging.FieldGranularity, Value: g.Label()})
		return err
	}
	return common.WriteOutput(cmd, buckets)
}
