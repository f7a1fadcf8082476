package monitor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessMetrics(t *testing.T) {
	// 未初始化时直接跳过
	assert.NotPanics(t, func() {
		ObserveAccountImport("success")
		ObserveRecoveryFetch(nil)
	})

	Init()
	Init()

	ObserveAccountImport("success")
	ObserveAccountImport("rejected")
	ObserveAccountImport("success")
	assert.Equal(t, 2.0, testutil.ToFloat64(Business.AccountImportTotal.WithLabelValues("success")))

	ObserveRecoveryFetch(errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(Business.RecoveryFetchTotal.WithLabelValues("error")))

	ObserveDiscoveredAccounts(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(Business.DiscoveredAccountsTotal))

	ObserveSignIn(time.Now(), nil)
	assert.Equal(t, 1, testutil.CollectAndCount(Business.SignInDuration))
}

func TestPrometheusMiddleware(t *testing.T) {
	Init()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/api/v1/recovery/:accountId", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/recovery/:accountId", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/recovery/alice.near", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/not-found", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/recovery/:accountId", "200"))
	assert.Equal(t, before+1, after)
}
