package handlers

import (
	"go.uber.org/zap"

	"portfolioAPI/internal/config"
	"portfolioAPI/internal/metrics"
	"portfolioAPI/internal/service"
)

type Handlers struct {
	Service *service.Service
	Cfg     *config.Config
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewHandlers(service *service.Service, config *config.Config, metrics *metrics.Metrics, log *zap.Logger) *Handlers {
	return &Handlers{
		Service: service,
		Cfg:     config,
		Metrics: metrics,
		Log:     log,
	}
}
