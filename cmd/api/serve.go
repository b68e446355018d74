package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on (default 3000)")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	cfg := config.Load(viper.GetViper())

	logger, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	logger.Info("starting the resume analyzer", zap.String("version", version), zap.String("env", cfg.Server.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("initializing server", zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		srv.shutdown()
		close(done)
	}()

	if err := srv.listen(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	<-done
}
