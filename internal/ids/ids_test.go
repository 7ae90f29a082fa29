package ids

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := UUID{}.New()

		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestFunc(t *testing.T) {
	n := 0
	gen := Func(func() string {
		n++
		return "id-" + string(rune('0'+n))
	})

	assert.Equal(t, "id-1", gen.New())
	assert.Equal(t, "id-2", gen.New())
}
