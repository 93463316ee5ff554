// Package importer loads transactions from a CSV file into the configured source
package importer

import (
	"fmt"

	"fjacquet/spend-rollup/cmd/root"
	loader "fjacquet/spend-rollup/internal/importer"
	"fjacquet/spend-rollup/internal/logging"

	"github.com/spf13/cobra"
)

var (
	userID    string
	inputFile string
	strict    bool
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from a CSV file",
	Long: `Import transactions from a CSV file with ID, Date, Amount, Category and
Description columns into the configured csv or sqlite source. Rows sharing an
ID with stored transactions replace them.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User id")
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file")
	Cmd.Flags().BoolVar(&strict, "strict", false, "Reject the file when a row has an unparsable amount or date")
	_ = Cmd.MarkFlagRequired("input")
}

func importFunc(cmd *cobra.Command, args []string) error {
	if err := loader.ValidateUser(inputFile, userID); err != nil {
		return err
	}

	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	target, err := c.GetImporter()
	if err != nil {
		return err
	}

	txs, err := loader.NewLoader(c.GetLogger(), strict).LoadFile(inputFile)
	if err != nil {
		return err
	}

	n, err := target.ImportTransactions(cmd.Context(), userID, txs)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	root.Log.Info("Import completed",
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldCount, Value: n})
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions for user %s\n", n, userID)
	return err
}
