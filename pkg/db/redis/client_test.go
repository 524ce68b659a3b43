package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegrid/pkg/db/redis"
)

func configFor(t *testing.T, mr *miniredis.Miniredis) *redis.Config {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	return &redis.Config{
		Host:           mr.Host(),
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       2,
	}
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(context.Background(), configFor(t, mr))
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestNewClientUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := configFor(t, mr)
	mr.Close()

	client, err := redis.NewClient(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), redis.ErrConnect)
}

func TestConfigGetAddress(t *testing.T) {
	cfg := redis.Config{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.GetAddress())
}
