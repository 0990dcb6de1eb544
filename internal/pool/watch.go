package pool

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher invalidates a Loader's cache when pool files change on disk and
// reports each change through onChange.
type Watcher struct {
	loader   *Loader
	watcher  *fsnotify.Watcher
	onChange func(Category)
	log      zerolog.Logger

	debounce   time.Duration
	mu         sync.Mutex
	lastChange map[Category]time.Time

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher watches the loader's pool directory. onChange may be nil.
func NewWatcher(l *Loader, onChange func(Category), log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		loader:     l,
		watcher:    fw,
		onChange:   onChange,
		log:        log,
		debounce:   250 * time.Millisecond,
		lastChange: make(map[Category]time.Time),
		stopCh:     make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine.
func (w *Watcher) Start() error {
	dir := w.loader.Paths().BaseDir
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.log.Info().Str("dir", dir).Msg("watching pools")
	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop terminates the watcher and waits for it to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	_ = w.watcher.Close()
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("pool watcher error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	c, ok := categoryForFile(filepath.Base(ev.Name))
	if !ok {
		return
	}
	w.loader.Invalidate(c)

	w.mu.Lock()
	last, seen := w.lastChange[c]
	now := time.Now()
	if seen && now.Sub(last) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.lastChange[c] = now
	w.mu.Unlock()

	w.log.Info().Str("category", string(c)).Str("op", ev.Op.String()).Msg("pool changed")
	if w.onChange != nil {
		w.onChange(c)
	}
}

func categoryForFile(name string) (Category, bool) {
	for _, c := range Concrete {
		if name == string(c)+".txt" {
			return c, true
		}
	}
	return "", false
}
