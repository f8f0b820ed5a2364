package http_test

import (
	"testing"
	"time"

	jehttp "github.com/fwojciec/jsonextract/http"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("allows the burst then refuses", func(t *testing.T) {
		t.Parallel()

		limiter := jehttp.NewClientLimiter(0.001, 2)

		assert.True(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))
	})

	t.Run("limits clients independently", func(t *testing.T) {
		t.Parallel()

		limiter := jehttp.NewClientLimiter(0.001, 1)

		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("b"))
	})

	t.Run("prune restores a fresh bucket", func(t *testing.T) {
		t.Parallel()

		limiter := jehttp.NewClientLimiter(0.001, 1)
		assert.True(t, limiter.Allow("a"))

		limiter.Prune(time.Now().Add(time.Second))

		assert.Equal(t, 0, limiter.Len())
		assert.True(t, limiter.Allow("a"))
	})

	t.Run("prune keeps recently seen clients", func(t *testing.T) {
		t.Parallel()

		limiter := jehttp.NewClientLimiter(0.001, 1)
		assert.True(t, limiter.Allow("a"))

		limiter.Prune(time.Now().Add(-time.Minute))

		assert.Equal(t, 1, limiter.Len())
		assert.False(t, limiter.Allow("a"))
	})

	t.Run("treats zero burst as one", func(t *testing.T) {
		t.Parallel()

		limiter := jehttp.NewClientLimiter(0.001, 0)

		assert.True(t, limiter.Allow("a"))
	})
}
