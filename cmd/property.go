package cmd

import (
	"credit/pkg/number"

	"github.com/spf13/cobra"
)

var setMaxSlippageCmd = &cobra.Command{
	Use:   "set-max-slippage",
	Short: "set the protocol wide max slippage property",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if len(args) != 1 {
			panic("usage: credit set-max-slippage 0.5")
		}

		value := number.Decimal(args[0])
		if !value.IsPositive() || value.GreaterThan(number.Decimal("1")) {
			panic("max slippage must be in (0, 1]")
		}

		database := provideDatabase()
		defer database.Close()

		if err := providePropertyStore(database).Save(ctx, "max_slippage", value.String()); err != nil {
			panic(err)
		}

		cmd.Println("max_slippage =", value)
	},
}

func init() {
	rootCmd.AddCommand(setMaxSlippageCmd)
}
