package importer

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory for dropped CSV files and emits each
// path once writes have settled. A file that receives further writes
// within the debounce window is re-armed rather than emitted twice.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    chan string
	errs     chan error
	done     chan struct{}
	debounce time.Duration

	mu        sync.Mutex
	pending   map[string]*time.Timer
	closeOnce sync.Once
}

// NewWatcher starts watching dir for CSV drops.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		fs:       fs,
		files:    make(chan string),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
		debounce: debounce,
		pending:  make(map[string]*time.Timer),
	}
	go w.loop()
	return w, nil
}

// Files emits settled CSV paths. The channel is never closed; select
// against Done or an outer context.
func (w *Watcher) Files() <-chan string { return w.files }

// Errors surfaces watcher errors.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Done is closed when the watcher shuts down.
func (w *Watcher) Done() <-chan struct{} { return w.done }

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if strings.ToLower(filepath.Ext(ev.Name)) != ".csv" {
				continue
			}
			w.arm(ev.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// arm (re)starts the debounce timer for a path.
func (w *Watcher) arm(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.files <- path:
		case <-w.done:
		}
	})
}

// Close stops the watcher and cancels pending emissions.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, t := range w.pending {
			t.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()
	})
	return w.fs.Close()
}
