package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckExclusive(t *testing.T) {
	t.Run("no guarded processes", func(t *testing.T) {
		assert.NoError(t, CheckExclusive(nil))
	})

	t.Run("guarded process not running", func(t *testing.T) {
		assert.NoError(t, CheckExclusive([]string{"gedbridge-definitely-not-running.exe"}))
	})
}
