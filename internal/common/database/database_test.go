// internal/common/database/database_test.go
package database

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/config"
)

// ==========================
// Postgres Tests
// ==========================

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, stmt := range Schema {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	pg := &PostgresClient{DB: db}
	require.NoError(t, pg.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(Schema[0]).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	pg := &PostgresClient{DB: db}
	err = pg.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Redis Cache Tests
// ==========================

type cachedProfile struct {
	Education string `json:"education"`
	Score     int    `json:"score"`
}

func TestJSONCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := NewJSONCache(client, "career:profile:", 10*time.Minute)
	ctx := context.Background()

	var got cachedProfile
	found, err := cache.Get(ctx, "u-1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, "u-1", cachedProfile{Education: "graduate", Score: 80}))
	assert.True(t, mr.Exists("career:profile:u-1"))
	assert.Equal(t, 10*time.Minute, mr.TTL("career:profile:u-1"))

	found, err = cache.Get(ctx, "u-1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedProfile{Education: "graduate", Score: 80}, got)
}

func TestJSONCache_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("career:profile:u-2", "{not json"))
	cache := NewJSONCache(client, "career:profile:", time.Minute)

	var got cachedProfile
	found, err := cache.Get(context.Background(), "u-2", &got)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestJSONCache_Disabled(t *testing.T) {
	var nilCache *JSONCache
	found, err := nilCache.Get(context.Background(), "x", &cachedProfile{})
	assert.False(t, found)
	assert.NoError(t, err)
	assert.NoError(t, NewJSONCache(nil, "p:", time.Minute).Set(context.Background(), "x", 1))
}

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	defer rc.Close()

	assert.NoError(t, rc.Ping(context.Background()))
	mr.Close()
	assert.Error(t, rc.Ping(context.Background()))
}

// ==========================
// Elasticsearch Tests
// ==========================

func TestElasticsearch_Ping(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	es, err := NewElasticsearch(config.ElasticsearchConfig{URL: srv.URL})
	require.NoError(t, err)
	assert.NoError(t, es.Ping(context.Background()))

	status.Store(http.StatusServiceUnavailable)
	assert.Error(t, es.Ping(context.Background()))
}
