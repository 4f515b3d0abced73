package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	theme, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, Default.Primary, theme.Primary)

	theme, err = ByName("catppuccin-mocha")
	require.NoError(t, err)
	assert.Equal(t, CatppuccinMocha.Primary, theme.Primary)

	_, err = ByName("neon")
	assert.ErrorContains(t, err, "catppuccin-mocha")
	assert.Equal(t, []string{"catppuccin-mocha", "default"}, Names())
}
