package cmd

import (
	"strings"

	"credit/core"

	"github.com/spf13/cobra"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "asset cmd group",
}

var upsertAssetCmd = &cobra.Command{
	Use:     "upsert",
	Aliases: []string{"up"},
	Short:   "add or update an asset",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		denom, e := cmd.Flags().GetString("denom")
		if e != nil || denom == "" {
			panic("invalid denom")
		}
		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil {
			panic(e)
		}
		whitelisted, e := cmd.Flags().GetBool("whitelisted")
		if e != nil {
			panic(e)
		}

		database := provideDatabase()
		defer database.Close()

		asset := core.Asset{
			Denom:       denom,
			Symbol:      strings.ToUpper(symbol),
			Whitelisted: whitelisted,
		}

		if err := provideAssetStore(database).Save(ctx, &asset); err != nil {
			panic(err)
		}

		cmd.Println("asset saved:", asset.Denom)
	},
}

var listAssetsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list assets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		assets, err := provideAssetStore(database).All(ctx)
		if err != nil {
			panic(err)
		}

		for _, a := range assets {
			cmd.Println(a.Denom, a.Symbol, "whitelisted:", a.Whitelisted)
		}
	},
}

func init() {
	upsertAssetCmd.Flags().String("denom", "", "asset denom")
	upsertAssetCmd.Flags().String("symbol", "", "asset symbol")
	upsertAssetCmd.Flags().Bool("whitelisted", false, "allow as swap target and borrow denom")

	assetCmd.AddCommand(upsertAssetCmd)
	assetCmd.AddCommand(listAssetsCmd)
	rootCmd.AddCommand(assetCmd)
}
