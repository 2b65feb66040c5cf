package uuid_test

import (
	"strings"
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-range-bot/internal/uuid"
)

func TestPrefixedGenerator(t *testing.T) {
	id := uuid.NewPrefixedGenerator("range").New()

	require.True(t, strings.HasPrefix(id, "range-"))
	_, err := googleuuid.Parse(strings.TrimPrefix(id, "range-"))
	assert.NoError(t, err)

	bare := uuid.NewPrefixedGenerator("").New()
	_, err = googleuuid.Parse(bare)
	assert.NoError(t, err)
}
