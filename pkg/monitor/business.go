package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	AccountImportTotal      *prometheus.CounterVec
	SignInDuration          *prometheus.HistogramVec
	DeviceConnectionTotal   *prometheus.CounterVec
	RecoveryFetchTotal      *prometheus.CounterVec
	DiscoveredAccountsTotal prometheus.Counter
}

// Global Metrics Instance (未 Init 时为 nil，下面的记录函数都会直接跳过)
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		AccountImportTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keystone_account_import_total",
			Help: "Account imports by final status",
		}, []string{"status"}),
		SignInDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keystone_signin_duration_seconds",
			Help:    "Duration of the sign in with keystone flow",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		}, []string{"result"}),
		DeviceConnectionTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keystone_device_connection_total",
			Help: "Device connect / disconnect events",
		}, []string{"event"}),
		RecoveryFetchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_recovery_methods_fetch_total",
			Help: "Recovery method fetches by result",
		}, []string{"result"}),
		DiscoveredAccountsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keystone_discovered_accounts_total",
			Help: "Account ids returned by device discovery",
		}),
	}
}

func ObserveAccountImport(status string) {
	if Business == nil {
		return
	}
	Business.AccountImportTotal.WithLabelValues(status).Inc()
}

func ObserveSignIn(start time.Time, err error) {
	if Business == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	Business.SignInDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

func ObserveDeviceConnection(event string) {
	if Business == nil {
		return
	}
	Business.DeviceConnectionTotal.WithLabelValues(event).Inc()
}

func ObserveRecoveryFetch(err error) {
	if Business == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	Business.RecoveryFetchTotal.WithLabelValues(result).Inc()
}

func ObserveDiscoveredAccounts(n int) {
	if Business == nil {
		return
	}
	Business.DiscoveredAccountsTotal.Add(float64(n))
}
