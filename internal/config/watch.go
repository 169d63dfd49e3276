package config

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"greenops-insights/internal/insights"
	"greenops-insights/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Live holds the current insight options. Readers never block; a reload
// swaps the whole value.
type Live struct {
	opts atomic.Pointer[insights.Options]
}

func NewLive(opts insights.Options) *Live {
	l := &Live{}
	l.Store(opts)
	return l
}

func (l *Live) Options() insights.Options {
	return *l.opts.Load()
}

func (l *Live) Store(opts insights.Options) {
	l.opts.Store(&opts)
}

const debounceInterval = 100 * time.Millisecond

// Watcher reloads a config file into a Live whenever the file changes.
// Edits that fail to load or validate are logged and ignored, leaving the
// previous options in place.
type Watcher struct {
	path    string
	live    *Live
	watcher *fsnotify.Watcher

	mu       sync.Mutex
	debounce *time.Timer
	reloaded chan struct{}
	stop     chan struct{}
	done     chan struct{}
}

// Watch starts watching path. The directory is watched rather than the file
// so that editors which replace the file on save are still seen.
func Watch(path string, live *Live) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	w := &Watcher{
		path:     path,
		live:     live,
		watcher:  fw,
		reloaded: make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Reloaded receives a value after each reload attempt, successful or not.
func (w *Watcher) Reloaded() <-chan struct{} { return w.reloaded }

func (w *Watcher) Close() error {
	close(w.stop)
	<-w.done
	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.mu.Lock()
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(debounceInterval, w.reload)
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "path", w.path, "error", err)

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) reload() {
	defer w.notify()

	c, err := Load(w.path)
	if err != nil {
		logger.Warn("config reload rejected, keeping previous options", "path", w.path, "error", err)
		return
	}
	w.live.Store(c.Options())
	logger.Info("config reloaded", "path", w.path)
}

func (w *Watcher) notify() {
	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}
