package api

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerStartStop(t *testing.T) {
	s, _ := newTestServer(t)
	s.server.Addr = "127.0.0.1:0"

	require.NoError(t, s.Start())
	defer s.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", s.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServerStartPortInUse(t *testing.T) {
	first, _ := newTestServer(t)
	first.server.Addr = "127.0.0.1:0"
	require.NoError(t, first.Start())
	defer first.Stop()

	second, _ := newTestServer(t)
	second.server.Addr = first.Addr()
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind")
}
