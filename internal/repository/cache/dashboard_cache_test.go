package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-assistant-client/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDashboardCacheRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "localhost:6379"
	}
	rdb := NewRedisClient(url)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", url, err)
	}

	c := NewRedisDashboardCache(rdb, "test-"+uuid.NewString(), time.Minute)

	missing, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, c.Save(ctx, entity.DashboardSnapshot{
		TotalNotes: 3,
		Activities: []entity.Activity{{Id: "a1", Type: entity.KindNote, Title: "Compras"}},
	}))

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TotalNotes)
	assert.Equal(t, "Compras", got.Activities[0].Title)
}
