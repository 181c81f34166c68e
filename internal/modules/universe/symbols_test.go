package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	t.Run("known exchanges", func(t *testing.T) {
		assert.Equal(t, HOSE, List("HOSE"))
		assert.Equal(t, HNX, List("HNX"))
		assert.Equal(t, UPCOM, List("UPCOM"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, HOSE, List("hose"))
	})

	t.Run("unknown exchange returns the full market", func(t *testing.T) {
		all := List("ALL")
		assert.Len(t, all, len(HOSE)+len(HNX)+len(UPCOM))
		assert.Contains(t, all, "HPG")
		assert.Contains(t, all, "PVS")
		assert.Contains(t, all, "BSR")
	})
}

func TestUniverseHasNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, symbol := range List("") {
		assert.False(t, seen[symbol], "duplicate symbol %s", symbol)
		seen[symbol] = true
	}
}
