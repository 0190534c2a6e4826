package shaders

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/giongto35/glbootstrap/pkg/logger"
)

// Watcher notifies about changes of shader files.
// Bursts of filesystem events are merged into one notification.
type Watcher struct {
	files    map[string]struct{}
	fs       *fsnotify.Watcher
	c        chan struct{}
	debounce time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	log      *logger.Logger
}

// NewWatcher watches the directories of the files since editors
// tend to replace files instead of writing into them.
func NewWatcher(files []string, debounce time.Duration, log *logger.Logger) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		files:    make(map[string]struct{}),
		fs:       fs,
		c:        make(chan struct{}, 1),
		debounce: debounce,
		done:     make(chan struct{}),
		log:      log,
	}
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fs.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err = fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("watch %v: %w", dir, err)
		}
	}
	return w, nil
}

// Changes returns the notification channel.
func (w *Watcher) Changes() <-chan struct{} { return w.c }

func (w *Watcher) Run() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case event, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if !w.matches(event) {
					continue
				}
				w.log.Debug().Msgf("Shader file event: %v", event)
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				w.log.Error().Err(err).Msg("Shader watch error")
			case <-fire:
				fire = nil
				select {
				case w.c <- struct{}{}:
				default:
				}
			case <-w.done:
				if timer != nil {
					timer.Stop()
				}
				return
			}
		}
	}()
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}

func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
