package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapPreservesSentinel(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "person P-42")

	assert.Contains(t, wrapped.Error(), "person P-42")
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.True(t, IsNotFound(wrapped))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrAmbiguous,
		ErrSelfReferential,
		ErrDuplicate,
		ErrStructural,
		ErrStoreLocked,
		ErrRowRejected,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(ErrStoreLocked))
	assert.True(t, IsFatal(Wrap(ErrStoreLocked, "probe")))
	assert.False(t, IsFatal(ErrRowRejected))
	assert.False(t, IsFatal(ErrNotFound))
	assert.False(t, IsFatal(nil))
}

func TestIsAmbiguous(t *testing.T) {
	assert.True(t, IsAmbiguous(Wrapf(ErrAmbiguous, "events %d and %d", 10, 11)))
	assert.False(t, IsAmbiguous(ErrNotFound))
	assert.False(t, IsAmbiguous(nil))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("reference %q has no person row", "R123")
	require.NotNil(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "R123")
}
