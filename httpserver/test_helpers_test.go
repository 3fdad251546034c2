//nolint:unused
package httpserver_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"smdb/httpserver"
	"smdb/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{}
}

func newTestServer(t testing.TB) *httpserver.Server {
	t.Helper()
	server := httpserver.Default(testConfig())
	server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return server
}

func decodeAPIError(t testing.TB, rec *httptest.ResponseRecorder) httpserver.APIError {
	t.Helper()
	var resp httpserver.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func decodeJSON[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(&v), "body: %s", rec.Body.String())
	return v
}
