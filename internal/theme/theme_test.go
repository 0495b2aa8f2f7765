package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUse(t *testing.T) {
	t.Cleanup(func() { _ = Use("default") })

	require.NoError(t, Use("blue"))
	assert.Equal(t, accents["blue"], ColorAccent)
	assert.Equal(t, ColorAccent, HeaderStyle.GetBackground())

	require.NoError(t, Use(""))
	assert.Equal(t, accents["default"], ColorAccent)

	assert.Error(t, Use("neon"))
	assert.Equal(t, accents["default"], ColorAccent)
}
