package main

import (
	"fmt"
	"os"

	"fjacquet/spend-rollup/cmd/categories"
	"fjacquet/spend-rollup/cmd/importer"
	"fjacquet/spend-rollup/cmd/root"
	"fjacquet/spend-rollup/cmd/series"
	"fjacquet/spend-rollup/cmd/summary"
	"fjacquet/spend-rollup/cmd/users"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(series.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(users.Cmd)
}

func main() {
	err := root.Cmd.Execute()
	root.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
