package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/spendwatch/internal/handlers/v1/alert"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/intake"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/pending"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/prediction"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/recurring"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/status"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/summary"
	"github.com/carson-networks/spendwatch/internal/handlers/v1/transactions"
	"github.com/carson-networks/spendwatch/internal/logging"
	"github.com/carson-networks/spendwatch/internal/operator"
	"github.com/carson-networks/spendwatch/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("spendwatch", "1.0.0"))

	intake.NewProcessNotificationHandler(r.Operator).Register(humaAPI)
	alert.NewSetLimitHandler(r.Operator).Register(humaAPI)
	alert.NewGetLimitsHandler(r.Service.Limits).Register(humaAPI)
	alert.NewCheckAlertsHandler(r.Service.Limits).Register(humaAPI)
	summary.NewGetSummaryHandler(r.Service.Limits).Register(humaAPI)
	transactions.NewListTransactionsHandler(r.Service.History).Register(humaAPI)
	recurring.NewListRecurringHandler(r.Service.Recurring).Register(humaAPI)
	prediction.NewPredictSpendingHandler(r.Service.Prediction).Register(humaAPI)
	prediction.NewPredictCashflowHandler(r.Service.Prediction).Register(humaAPI)
	prediction.NewDailyTrendHandler(r.Service.Prediction).Register(humaAPI)
	prediction.NewMonthlyTrendHandler(r.Service.Prediction).Register(humaAPI)
	pending.NewCreatePendingHandler(r.Operator).Register(humaAPI)
	pending.NewListPendingHandler(r.Service.Pending).Register(humaAPI)
	pending.NewDeletePendingHandler(r.Operator).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
