package main

import (
	"context"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spendwatch/api"
	"github.com/carson-networks/spendwatch/internal/config"
	"github.com/carson-networks/spendwatch/internal/extractor"
	"github.com/carson-networks/spendwatch/internal/logging"
	"github.com/carson-networks/spendwatch/internal/operator"
	"github.com/carson-networks/spendwatch/internal/parser"
	"github.com/carson-networks/spendwatch/internal/service"
	"github.com/carson-networks/spendwatch/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("main.godotenv not loaded")
	}

	logger := logging.SetupLogging()
	logrus.Info("spendwatch starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	var semanticExtractor parser.Extractor
	if envConfig.GeminiAPIKey != "" {
		gemini, err := extractor.NewGemini(context.Background())
		if err != nil {
			logrus.WithError(err).Fatal("extractor.NewGemini")
			return
		}
		semanticExtractor = gemini
	} else {
		logrus.Info("main.no GOOGLE_API_KEY, semantic extractor disabled")
	}

	svc := service.NewService(dbStorage, semanticExtractor)

	delegator := operator.NewOperatorDelegator(svc, 4)
	delegator.Start()
	defer delegator.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.Port,
			Service:  svc,
			Operator: delegator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
