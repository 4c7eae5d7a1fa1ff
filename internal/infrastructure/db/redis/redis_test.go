package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnreachableServer(t *testing.T) {
	start := time.Now()
	c, err := Open(context.Background(), Config{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "redis ping")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_PingReportsFailure(t *testing.T) {
	c := unreachableClient()
	defer c.Close()

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}
