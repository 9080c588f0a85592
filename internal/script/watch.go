package script

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"bootterm/internal/system"
)

// Watcher signals on C after the watched file changes, debounced.
// The parent directory is watched so editors that save by rename still fire.
type Watcher struct {
	w    *fsnotify.Watcher
	c    chan struct{}
	once sync.Once
	done chan struct{}
}

// NewWatcher starts watching path.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{w: fw, c: make(chan struct{}, 1), done: make(chan struct{})}
	go w.loop(abs, debounce)
	return w, nil
}

// C delivers one value per burst of changes. It is closed once the watcher stops.
func (w *Watcher) C() <-chan struct{} { return w.c }

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.w.Close()
	})
	return err
}

func (w *Watcher) loop(target string, debounce time.Duration) {
	defer close(w.c)
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			system.Logger.Warn("script watcher", "err", err)
		case <-fire:
			fire = nil
			select {
			case w.c <- struct{}{}:
			default:
			}
		}
	}
}
