package observability_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/kwargs/pkg/observability"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, observability.ResultOK},
		{&value.PathError{Path: ".a", Err: value.ErrUnsupportedType}, observability.ResultUnsupportedType},
		{fmt.Errorf("echo: %w", &value.PathError{Err: value.ErrUnsupportedKeyType}), observability.ResultUnsupportedKeyType},
		{value.ErrRecursionLimitExceeded, observability.ResultRecursionLimit},
		{value.ErrNotFound, observability.ResultNotFound},
		{errors.New("boom"), observability.ResultError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Result(tt.err))
	}
}

func TestMetrics_Observe(t *testing.T) {
	m := observability.New()

	m.ObserveConversion("echo", time.Now(), nil)
	m.ObserveConversion("echo", time.Now(), nil)
	m.ObserveConversion("echo", time.Now(), value.ErrUnsupportedType)
	m.ObserveStore("load", value.ErrNotFound)

	body := scrape(t, m)
	assert.Contains(t, body, `kwargs_conversions_total{op="echo",result="ok"} 2`)
	assert.Contains(t, body, `kwargs_conversions_total{op="echo",result="unsupported_type"} 1`)
	assert.Contains(t, body, `kwargs_store_operations_total{op="load",result="not_found"} 1`)
	assert.Contains(t, body, `kwargs_conversion_duration_seconds_count{op="echo"} 3`)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.New()
	m.ObserveConversion("generate", time.Now(), nil)

	body := scrape(t, m)
	assert.Contains(t, body, `kwargs_conversions_total{op="generate",result="ok"} 1`)
	assert.Contains(t, body, "# TYPE kwargs_conversion_duration_seconds histogram")
}

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveConversion("echo", time.Now(), nil)
		m.ObserveStore("save", nil)
	})
}
