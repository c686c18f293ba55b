package cmd

import (
	"sync"

	"custody/worker"
	"custody/worker/auditor"
	"custody/worker/relay"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "custody job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		b := provideBackend(false)
		defer b.close()

		vault := provideVault(b.transactor, provideAssetRegistry())

		workers := []worker.Worker{
			relay.New(b.notifications, b.checkpoints, providePublisher(), relay.Config{
				Batch:    cfg.Relay.Batch,
				Interval: cfg.Relay.Interval,
				Settle:   cfg.Relay.Settle,
			}),
		}

		if spec, _ := cmd.Flags().GetString("audit"); spec != "" {
			workers = append(workers, auditor.New(b.notifications, vault, provideLocation(), spec))
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().String("audit", "@every 10m", "cron spec of the custody audit, empty to disable")
}
