// File: internal/watcher/watcher.go
//
// Package watcher watches a case directory's artifact folder for store
// files appearing, disappearing, or being replaced, and invalidates the
// Discovery Cache so a live view never serves stale metadata (spec.md
// §4.7's force_refresh has a filesystem-driven counterpart here,
// component C13).
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// debounceWindow coalesces a burst of related filesystem events (e.g. a
// writer truncating then rewriting a .db file) into a single callback.
const debounceWindow = 500 * time.Millisecond

// CaseWatcher watches <caseDir>/Target_Artifacts for Create/Write/Remove/
// Rename events and calls onChange at most once per debounceWindow.
type CaseWatcher struct {
	fsw      *fsnotify.Watcher
	log      logr.Logger
	onChange func()

	mu     sync.Mutex
	timer  *time.Timer
	done   chan struct{}
	closed chan struct{}
}

// New starts watching caseDir's artifact directory and returns a
// CaseWatcher running on its own goroutine. onChange is invoked from the
// debounce timer's goroutine, or from the watcher goroutine when Close
// runs a pending callback.
func New(caseDir string, onChange func()) (*CaseWatcher, error) {
	return newWithLogger(caseDir, onChange, logr.Discard())
}

// NewWithLogger is like New but logs skipped/errored events through log.
func NewWithLogger(caseDir string, onChange func(), log logr.Logger) (*CaseWatcher, error) {
	return newWithLogger(caseDir, onChange, log)
}

func newWithLogger(caseDir string, onChange func(), log logr.Logger) (*CaseWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create: %w", err)
	}

	artifactDir := filepath.Join(caseDir, "Target_Artifacts")
	if err := fsw.Add(artifactDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: add %s: %w", artifactDir, err)
	}

	w := &CaseWatcher{
		fsw:      fsw,
		log:      log,
		onChange: onChange,
		done:     make(chan struct{}),
		closed:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *CaseWatcher) run() {
	defer close(w.closed)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				w.flush()
				return
			}
			if !relevant(event) {
				continue
			}
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				continue
			}
			w.log.Error(err, "watcher: fsnotify error")
		case <-w.done:
			w.flush()
			return
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.HasCreate() || event.HasWrite() || event.HasRemove() || event.HasRename()
}

// schedule (re)arms the debounce timer; repeated calls within
// debounceWindow collapse into the single callback the timer fires.
func (w *CaseWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceWindow, w.fire)
}

func (w *CaseWatcher) fire() {
	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()
	w.onChange()
}

// flush runs any pending debounced callback synchronously instead of
// leaving it to the timer, so a Close right after a burst of events still
// invalidates the cache.
func (w *CaseWatcher) flush() {
	w.mu.Lock()
	t := w.timer
	w.timer = nil
	w.mu.Unlock()
	if t != nil && t.Stop() {
		w.onChange()
	}
}

// Close stops the watcher goroutine, first running any pending debounced
// callback, and then closes the underlying fsnotify watcher.
func (w *CaseWatcher) Close() error {
	close(w.done)
	<-w.closed
	return w.fsw.Close()
}
