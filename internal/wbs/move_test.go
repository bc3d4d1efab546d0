package wbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMove(t *testing.T) {
	// 1 -> 2 -> 3, plus root 4
	parents := map[uint]uint{1: 0, 2: 1, 3: 2, 4: 0}

	t.Run("to root is always fine", func(t *testing.T) {
		assert.NoError(t, CheckMove(parents, 3, 0))
	})

	t.Run("to an unrelated node", func(t *testing.T) {
		assert.NoError(t, CheckMove(parents, 2, 4))
	})

	t.Run("to own descendant", func(t *testing.T) {
		assert.ErrorIs(t, CheckMove(parents, 1, 3), ErrCycle)
		assert.ErrorIs(t, CheckMove(parents, 2, 3), ErrCycle)
	})

	t.Run("to itself", func(t *testing.T) {
		assert.ErrorIs(t, CheckMove(parents, 2, 2), ErrCycle)
	})

	t.Run("terminates on pre-existing bad data", func(t *testing.T) {
		looped := map[uint]uint{5: 6, 6: 5}
		assert.NoError(t, CheckMove(looped, 1, 5))
	})
}
