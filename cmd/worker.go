package cmd

import (
	"sync"

	"credit/worker"
	"credit/worker/cashier"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "credit job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		batch, _ := cmd.Flags().GetInt("cashier.batch")
		capacity, _ := cmd.Flags().GetInt64("cashier.capacity")

		workers := []worker.Worker{
			cashier.New(
				provideTransferStore(database),
				providePayoutService(),
				cashier.Config{
					Batch:    batch,
					Capacity: capacity,
				},
			),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				_ = worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	workerCmd.Flags().Int("cashier.batch", 100, "custom batch for worker cashier")
	workerCmd.Flags().Int64("cashier.capacity", 1, "custom capacity for worker cashier")
	rootCmd.AddCommand(workerCmd)
}
