package assets

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/prism/engine/core"
)

// DefaultDebounce coalesces the burst of writes editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

/**
 * @brief Watches a frame description file and fires
 * EVENT_CODE_FRAME_RELOADED once a change has settled. The parent
 * directory is watched rather than the file itself so atomic saves
 * (write to temp, rename over) keep being seen.
 */
type FrameWatcher struct {
	path     string
	debounce time.Duration

	mutex    sync.Mutex
	fsnotify *fsnotify.Watcher
	isClosed bool
	done     chan struct{}
	stopped  chan struct{}
	reloads  chan string
}

func NewFrameWatcher(path string, debounce time.Duration) (*FrameWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FrameWatcher{
		path:     abs,
		debounce: debounce,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		reloads:  make(chan string, 1),
	}, nil
}

// Path is the absolute path of the watched file.
func (fw *FrameWatcher) Path() string {
	return fw.path
}

// Reloads delivers the path each time the file settles after a change.
// A pending value is replaced rather than queued.
func (fw *FrameWatcher) Reloads() <-chan string {
	return fw.reloads
}

// Start runs the watch loop until ctx is done or Close is called.
func (fw *FrameWatcher) Start(ctx context.Context) {
	go fw.start(ctx)
}

func (fw *FrameWatcher) Close() error {
	fw.mutex.Lock()
	if fw.isClosed {
		fw.mutex.Unlock()
		return errors.New("frame watcher already closed")
	}
	fw.isClosed = true
	fw.mutex.Unlock()

	close(fw.done)
	return fw.fsnotify.Close()
}

// Done is closed once the watch loop has exited.
func (fw *FrameWatcher) Done() <-chan struct{} {
	return fw.stopped
}

func (fw *FrameWatcher) start(ctx context.Context) {
	defer close(fw.stopped)

	timer := time.NewTimer(fw.debounce)
	timer.Stop()

	for {
		select {
		case e, ok := <-fw.fsnotify.Events:
			if !ok {
				return
			}
			if !fw.matches(e.Name) {
				continue
			}
			// renames and removes are followed by a create when the
			// editor saves atomically
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				timer.Reset(fw.debounce)
			}

		case err, ok := <-fw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("frame watcher: %s", err.Error())

		case <-timer.C:
			core.LogInfo("frame description '%s' changed, reloading", fw.path)
			fw.notify()

		case <-ctx.Done():
			return

		case <-fw.done:
			return
		}
	}
}

func (fw *FrameWatcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == fw.path
}

func (fw *FrameWatcher) notify() {
	select {
	case fw.reloads <- fw.path:
	default:
		// a reload is already pending
	}
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_FRAME_RELOADED,
		Data: fw.path,
	})
}
