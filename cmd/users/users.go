// Package users lists the users known to the configured source
package users

import (
	"fjacquet/spend-rollup/cmd/common"
	"fjacquet/spend-rollup/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the users command
var Cmd = &cobra.Command{
	Use:   "users",
	Short: "List the users of the configured source",
	Long:  `List the ids of the users the configured transaction source knows about.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		ids, err := c.GetSource().Users(cmd.Context())
		if err != nil {
			return err
		}
		if ids == nil {
			ids = []string{}
		}
		return common.WriteOutput(cmd, ids)
	},
}
