// Package metrics 注册服务的 Prometheus 指标并暴露 /metrics
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TrainingRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_training_runs_total",
		Help: "Risk model training runs by result",
	}, []string{"result"})
	TrainingDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "risk_training_duration_ms",
		Help:    "Risk model training duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	ModelMSE = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "risk_model_mse",
		Help: "Held-out mean squared error of the current risk model",
	})
	ModelR2 = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "risk_model_r2",
		Help: "Held-out R2 of the current risk model",
	})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_predictions_total",
		Help: "Risk area predictions by outcome (model or default)",
	}, []string{"outcome"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(TrainingRunsTotal)
	prometheus.MustRegister(TrainingDurationMs)
	prometheus.MustRegister(ModelMSE)
	prometheus.MustRegister(ModelR2)
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDurationMs)
}

// Handler 返回 Prometheus 抓取端点
func Handler() http.Handler { return promhttp.Handler() }
