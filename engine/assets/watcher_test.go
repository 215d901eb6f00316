package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/prism/engine/core"
)

func TestFrameWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFrame), 0o644))

	fw, err := NewFrameWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)

	fired := make(chan string, 4)
	handle := core.EventRegister(core.EVENT_CODE_FRAME_RELOADED, func(ctx core.EventContext) bool {
		fired <- ctx.Data.(string)
		return true
	})
	defer core.EventUnregister(core.EVENT_CODE_FRAME_RELOADED, handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(sampleFrame), 0o644))
	}

	select {
	case got := <-fw.Reloads():
		assert.Equal(t, fw.Path(), got)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the frame file")
	}
	select {
	case got := <-fired:
		assert.Equal(t, fw.Path(), got)
	case <-time.After(time.Second):
		t.Fatal("no reload event fired")
	}

	require.NoError(t, fw.Close())
	assert.Error(t, fw.Close())
	select {
	case <-fw.Done():
	case <-time.After(time.Second):
		t.Fatal("watch loop did not exit")
	}
}

func TestFrameWatcherContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.toml")
	fw, err := NewFrameWatcher(path, 0)
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	fw.Start(ctx)
	cancel()
	select {
	case <-fw.Done():
	case <-time.After(time.Second):
		t.Fatal("watch loop ignored cancellation")
	}
}
