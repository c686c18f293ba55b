package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"custody/handler"
	"custody/handler/hc"
	"custody/worker/relay"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run custody api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		inMemory, _ := cmd.Flags().GetBool("memory")
		b := provideBackend(inMemory)
		defer b.close()

		vault := provideVault(b.transactor, provideAssetRegistry())
		if err := vault.Init(ctx, cfg.Vault.Admin); err != nil {
			log.WithError(err).Fatalln("vault.Init")
		}

		ledger := provideLedger(b.transactor)
		sessions := provideSessionService()

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			// hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, b.probe))
		}

		{
			// restful api
			svr := handler.New(provideConfig(), vault, ledger, b.notifications, sessions)
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		// a memory backend is private to this process, so it relays itself
		if inMemory {
			r := relay.New(b.notifications, b.checkpoints, providePublisher(), relay.Config{
				Batch:    cfg.Relay.Batch,
				Interval: cfg.Relay.Interval,
				Settle:   cfg.Relay.Settle,
			})

			go func() {
				_ = r.Run(ctx)
			}()
		}

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("memory", false, "keep all state in memory, nothing survives a restart")
}
