package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/igfetch/config"
	"github.com/truemediaorg/igfetch/instagram"
	"github.com/truemediaorg/igfetch/proxy"
	"github.com/truemediaorg/igfetch/resolver"
	"github.com/truemediaorg/igfetch/service"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Runs the resolve and download proxy API",
	Long:  `Runs the resolve and download proxy API`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnvfile()
		cfg.ConfigureLogging()

		/*
			Graceful shutdown is possible with errgroup + signal.NotifyContext
			NotifyContext returns a context that will close on OS signals to terminate the process
			errgroup uses that context, and also closes it in case a goroutine errors out
		*/
		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()
		g, gCtx := errgroup.WithContext(ctx)

		if cfg.Instagram.SecretPath != "" {
			secretsManagerClient, err := service.NewSecretsManagerClient(gCtx)
			if err != nil {
				log.Fatal(err)
			}
			if err := service.ApplyInstagramSecrets(gCtx, secretsManagerClient, &cfg.Instagram); err != nil {
				log.Fatalf("error loading instagram secrets: %v", err)
			}
		}

		graphClient := instagram.NewClient(cfg.Instagram.Settings())
		log.Infof("Instagram graph client initialized. Host: %s", cfg.Instagram.GraphURL.Host)

		api := service.NewAPI(
			resolver.NewService(graphClient),
			proxy.NewProxy(cfg.Proxy.AllowedSchemes),
			cfg.Proxy.DefaultFilename,
		)
		server := service.NewServer(cfg.ListenPort, api)

		g.Go(func() error {
			log.WithField("addr", server.Addr).Info("listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		// ...and shut down the server if the process needs to terminate
		g.Go(func() error {
			<-gCtx.Done()
			defer log.Info("exiting server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			log.Errorf("caught error: %v", err)
		}
	},
}
