package challenge

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlance/vouch/core"
)

func TestMemoryStoreIssue(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	ch, err := store.Issue(ctx, "0xABCdef")
	require.NoError(t, err)

	assert.Equal(t, "0xabcdef", ch.Address)
	assert.Regexp(t, regexp.MustCompile(`^Sign this challenge: [0-9a-f]{32}$`), ch.Text)
	assert.WithinDuration(t, time.Now(), ch.CreatedAt, time.Second)
}

func TestMemoryStorePeekNormalizesAddress(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	issued, err := store.Issue(ctx, "0xABC")
	require.NoError(t, err)

	peeked, err := store.Peek(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, issued.Text, peeked.Text)
}

func TestMemoryStoreReissueReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	first, err := store.Issue(ctx, "0xabc")
	require.NoError(t, err)
	second, err := store.Issue(ctx, "0xabc")
	require.NoError(t, err)
	require.NotEqual(t, first.Text, second.Text)

	live, err := store.Peek(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, second.Text, live.Text)
}

func TestMemoryStoreConsume(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	_, err := store.Issue(ctx, "0xabc")
	require.NoError(t, err)

	require.NoError(t, store.Consume(ctx, "0xabc"))

	_, err = store.Peek(ctx, "0xabc")
	assert.True(t, errors.Is(err, core.ErrNoChallenge))

	// Consuming an absent entry is not an error.
	assert.NoError(t, store.Consume(ctx, "0xabc"))
}

func TestMemoryStoreTake(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	issued, err := store.Issue(ctx, "0xabc")
	require.NoError(t, err)

	taken, err := store.Take(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, issued.Text, taken.Text)

	// A second taker finds nothing.
	_, err = store.Take(ctx, "0xabc")
	assert.True(t, errors.Is(err, core.ErrNoChallenge))
}

func TestMemoryStoreTakeExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	_, err := store.Issue(ctx, "0xabc")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = store.Take(ctx, "0xabc")
	assert.True(t, errors.Is(err, core.ErrNoChallenge))
}

func TestMemoryStoreAbsent(t *testing.T) {
	store := NewMemoryStore(0)

	_, err := store.Peek(context.Background(), "0xnobody")
	assert.True(t, errors.Is(err, core.ErrNoChallenge))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10 * time.Millisecond)

	_, err := store.Issue(ctx, "0xabc")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = store.Peek(ctx, "0xabc")
	assert.True(t, errors.Is(err, core.ErrNoChallenge))
}
