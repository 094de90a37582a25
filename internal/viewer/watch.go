package viewer

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/triforge/meshview/internal/logger"
)

// fileWatcher watches the currently loaded model file and fires a debounced
// callback when it is rewritten on disk.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(string)

	mu      sync.Mutex
	watched string
	timer   *time.Timer
	done    chan struct{}
}

func newFileWatcher(debounce time.Duration, onChange func(string)) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &fileWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

// Watch replaces the watched file. Only one file is watched at a time.
func (fw *fileWatcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.watched != "" {
		_ = fw.watcher.Remove(fw.watched)
	}
	if err := fw.watcher.Add(absPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	fw.watched = absPath
	return nil
}

func (fw *fileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.handleChange(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))

		case <-fw.done:
			return
		}
	}
}

// handleChange restarts the debounce timer; editors often emit several
// writes per save.
func (fw *fileWatcher) handleChange(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if path != fw.watched {
		return
	}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		fw.onChange(path)
	})
}

// Close stops the watcher. Safe to call more than once.
func (fw *fileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
	select {
	case <-fw.done:
	default:
		close(fw.done)
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
