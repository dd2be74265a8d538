package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsOverrideNothingGiven(t *testing.T) {
	off := false
	s := Settings{Width: 800, Height: 600, MaxDepth: 3, Shadows: &off}

	s.Override(0, 0, 0, nil, nil)

	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
	assert.Equal(t, 3, s.MaxDepth)
	// A document that disables shadows must stay disabled.
	require.NotNil(t, s.Shadows)
	assert.False(t, *s.Shadows)
	assert.Nil(t, s.Reflections)
}

func TestSettingsOverrideExplicitValues(t *testing.T) {
	off := false
	s := Settings{Width: 800, Height: 600, MaxDepth: 3, Shadows: &off}

	on := true
	s.Override(1024, 768, 5, nil, &on)

	assert.Equal(t, 1024, s.Width)
	assert.Equal(t, 768, s.Height)
	assert.Equal(t, 5, s.MaxDepth)
	require.NotNil(t, s.Shadows)
	assert.False(t, *s.Shadows, "untouched toggle keeps the document value")
	require.NotNil(t, s.Reflections)
	assert.True(t, *s.Reflections)
}

func TestSettingsOverrideDimensionsArePaired(t *testing.T) {
	s := Settings{Width: 800, Height: 600}

	// A width without a height (or vice versa) is ignored.
	s.Override(1024, 0, 0, nil, nil)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)

	s.Override(0, 768, 0, nil, nil)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
}

func TestSettingsOverrideCanDisable(t *testing.T) {
	on := true
	s := Settings{Shadows: &on, Reflections: &on}

	off := false
	s.Override(0, 0, 0, &off, &off)

	assert.False(t, *s.Shadows)
	assert.False(t, *s.Reflections)
}
