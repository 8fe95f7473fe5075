package tags

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCache(t *testing.T) {
	ctx := context.Background()

	t.Run("serves fresh entries from memory", func(t *testing.T) {
		c := newListCache(time.Minute)
		var loads int32
		load := func(ctx context.Context, project string) ([]*Tag, error) {
			atomic.AddInt32(&loads, 1)
			return []*Tag{{Name: project + ".T1"}}, nil
		}

		for i := 0; i < 3; i++ {
			tags, err := c.get(ctx, "plant", load)
			require.NoError(t, err)
			assert.Equal(t, "plant.T1", tags[0].Name)
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

		c.invalidate("plant")
		_, err := c.get(ctx, "plant", load)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	})

	t.Run("zero ttl disables caching", func(t *testing.T) {
		c := newListCache(0)
		var loads int32
		load := func(ctx context.Context, project string) ([]*Tag, error) {
			atomic.AddInt32(&loads, 1)
			return nil, nil
		}

		_, _ = c.get(ctx, "plant", load)
		_, _ = c.get(ctx, "plant", load)
		assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
	})

	t.Run("errors are not cached", func(t *testing.T) {
		c := newListCache(time.Minute)
		fail := true
		load := func(ctx context.Context, project string) ([]*Tag, error) {
			if fail {
				return nil, errors.New("db down")
			}
			return []*Tag{}, nil
		}

		_, err := c.get(ctx, "plant", load)
		assert.Error(t, err)

		fail = false
		_, err = c.get(ctx, "plant", load)
		assert.NoError(t, err)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		c := newListCache(time.Minute)
		var loads int32
		release := make(chan struct{})
		load := func(ctx context.Context, project string) ([]*Tag, error) {
			atomic.AddInt32(&loads, 1)
			<-release
			return []*Tag{}, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.get(ctx, "plant", load)
				assert.NoError(t, err)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	})
}
