package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lojify/storefront/internal/appcontext"
	"github.com/lojify/storefront/internal/config"
	"go.uber.org/zap"
)

func main() {
	cf := config.GetConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app, err := appcontext.NewApplicationContext(cf, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	logger.Info("storefront core ready", zap.String("service", cf.ServiceName))

	// schema 遷移與連線檢查完成後待命，前台/HTTP 層掛在 ApplicationContext 上
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("storefront core shutting down")
}
