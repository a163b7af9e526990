package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a test Redis client using miniredis
func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	// Create miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Create Redis client
	opts := &redis.Options{
		Addr: mr.Addr(),
	}
	redisClient := redis.NewClient(opts)

	client := &Client{
		Redis: redisClient,
	}

	return client, mr
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("://not-a-url")
	assert.Error(t, err)
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient("redis://" + addr)
	assert.Error(t, err)
}

func TestClient_SetGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	// Set a value
	err := client.Set(ctx, "test:key1", "value1", 1*time.Hour)
	require.NoError(t, err)

	// Get the value
	val, err := client.Get(ctx, "test:key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", val)
}

func TestClient_JSONRoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	type payload struct {
		Count   int      `json:"count"`
		Results []string `json:"results"`
	}

	err := client.SetJSON(ctx, "industries:list:abc", payload{Count: 2, Results: []string{"a", "b"}}, time.Minute)
	require.NoError(t, err)

	var got payload
	hit, err := client.GetJSON(ctx, "industries:list:abc", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []string{"a", "b"}, got.Results)

	// Expiration is honored
	mr.FastForward(2 * time.Minute)
	hit, err = client.GetJSON(ctx, "industries:list:abc", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestClient_GetJSON_Miss(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	var dest map[string]any
	hit, err := client.GetJSON(context.Background(), "missing", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestClient_GetJSON_Corrupt(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "catalog:sectors", "{not json", time.Minute))

	var dest []string
	hit, err := client.GetJSON(ctx, "catalog:sectors", &dest)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestClient_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	// Set values
	_ = client.Set(ctx, "test:key1", "value1", 1*time.Hour)
	_ = client.Set(ctx, "test:key2", "value2", 1*time.Hour)

	// Delete one key
	err := client.Delete(ctx, "test:key1")
	require.NoError(t, err)

	// Verify deletion
	_, err = client.Get(ctx, "test:key1")
	assert.Error(t, err) // Should be redis.Nil error

	// Other key should still exist
	val, err := client.Get(ctx, "test:key2")
	require.NoError(t, err)
	assert.Equal(t, "value2", val)
}

func TestClient_DeletePattern(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	// Set multiple keys with pattern
	_ = client.Set(ctx, "industries:list:1", "data1", 1*time.Hour)
	_ = client.Set(ctx, "industries:search:2", "data2", 1*time.Hour)
	_ = client.Set(ctx, "industries:search:3", "data3", 1*time.Hour)
	_ = client.Set(ctx, "catalog:sectors", "data4", 1*time.Hour)

	// Delete all industries:* keys
	deleted, err := client.DeletePattern(ctx, "industries:*")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	// Verify industries keys are deleted
	_, err = client.Get(ctx, "industries:list:1")
	assert.Error(t, err)

	_, err = client.Get(ctx, "industries:search:2")
	assert.Error(t, err)

	_, err = client.Get(ctx, "industries:search:3")
	assert.Error(t, err)

	// Verify catalog key still exists
	val, err := client.Get(ctx, "catalog:sectors")
	require.NoError(t, err)
	assert.Equal(t, "data4", val)
}

func TestClient_Exists(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	// Key doesn't exist
	exists, err := client.Exists(ctx, "test:nonexistent")
	require.NoError(t, err)
	assert.False(t, exists)

	// Set key
	_ = client.Set(ctx, "test:exists", "value", 1*time.Hour)

	// Key exists
	exists, err = client.Exists(ctx, "test:exists")
	require.NoError(t, err)
	assert.True(t, exists)
}
