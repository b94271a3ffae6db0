package cmd

import (
	"credit/core"
	"credit/pkg/id"

	"github.com/spf13/cobra"
)

var createAccountCmd = &cobra.Command{
	Use:     "create-account",
	Aliases: []string{"ca"},
	Short:   "issue a credit account for an owner",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		owner, e := cmd.Flags().GetString("owner")
		if e != nil || owner == "" {
			panic("invalid owner")
		}

		database := provideDatabase()
		defer database.Close()

		account := core.Account{
			AccountID: id.GenTraceID(),
			Owner:     owner,
		}

		if err := provideAccountStore(database).Create(ctx, &account); err != nil {
			panic(err)
		}

		cmd.Println("account created:", account.AccountID)
	},
}

func init() {
	createAccountCmd.Flags().String("owner", "", "owner identity")
	rootCmd.AddCommand(createAccountCmd)
}
