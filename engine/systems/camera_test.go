package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/components"
)

func TestCameraSystem(t *testing.T) {
	_, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 0})
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 2, Width: 800, Height: 600})
	require.NoError(t, err)

	def, err := cs.Acquire(components.DEFAULT_CAMERA_NAME)
	require.NoError(t, err)
	assert.Same(t, cs.GetDefault(), def)
	assert.Equal(t, uint32(800), def.Width)

	main := components.NewOrthographicCamera(10, 10)
	require.NoError(t, cs.Register("main", main))
	assert.ErrorIs(t, cs.Register("main", main), core.ErrInvalidConfig)
	assert.ErrorIs(t, cs.Register(components.DEFAULT_CAMERA_NAME, main), core.ErrInvalidConfig)
	require.NoError(t, cs.Register("second", main))
	assert.ErrorIs(t, cs.Register("third", main), core.ErrInvalidConfig)

	got, err := cs.Acquire("main")
	require.NoError(t, err)
	assert.Same(t, main, got)

	_, err = cs.Acquire("missing")
	assert.ErrorIs(t, err, core.ErrUnknownCamera)

	cs.Release("main")
	assert.Equal(t, 1, cs.Count())
	_, err = cs.Acquire("main")
	assert.ErrorIs(t, err, core.ErrUnknownCamera)
}
