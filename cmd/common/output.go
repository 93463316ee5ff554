// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/spend-rollup/cmd/root"
	"fjacquet/spend-rollup/internal/dateutils"

	"github.com/spf13/cobra"
)

// ParseNow returns the instant the command computes at: the parsed value in loc,
// or the current time when value is empty.
func ParseNow(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().In(loc), nil
	}
	now, _, err := dateutils.ParseDateIn(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value: %w", err)
	}
	return now, nil
}

// WriteOutput encodes v in the configured output format to the command's stdout.
func WriteOutput(cmd *cobra.Command, v interface{}) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return c.GetReportGenerator().WriteReport(cmd.OutOrStdout(), v, c.GetConfig().Output.Format)
}
