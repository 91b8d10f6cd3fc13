package resource

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// ChangeKind classifies a file change.
type ChangeKind int

const (
	ChangeWritten ChangeKind = iota
	ChangeCreated
	ChangeRemoved
)

// String returns a human-readable representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeRemoved:
		return "removed"
	default:
		return "written"
	}
}

// Change is a modification to a file in a watched resource group.
type Change struct {
	Group    string
	Filename string
	Kind     ChangeKind
}

// Watcher reports changes to files in resource group directories. The
// notifications are gathered on a background goroutine and only handed
// out through Poll, so consumers stay on the GUI goroutine.
type Watcher struct {
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	dirs    map[string]string // directory -> group
	pending []Change
	errs    []error
	closed  bool
	done    chan struct{}
}

// NewWatcher watches the directories of the given groups of p. With no
// groups every group is watched.
func NewWatcher(p *DirProvider, groups ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, guierrors.FileIO("resource.NewWatcher", "", err)
	}
	w := &Watcher{fsw: fsw, dirs: map[string]string{}, done: make(chan struct{})}
	if len(groups) == 0 {
		groups = p.Groups()
	}
	for _, g := range groups {
		dir, ok := p.GroupDirectory(g)
		if !ok {
			_ = fsw.Close()
			return nil, guierrors.UnknownObject("resource.NewWatcher", g)
		}
		if err := w.add(g, dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) add(group, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return guierrors.FileIO("resource.Watch", dir, err)
	}
	if _, ok := w.dirs[abs]; ok {
		return nil
	}
	if err := w.fsw.Add(abs); err != nil {
		return guierrors.FileIO("resource.Watch", dir, err)
	}
	w.dirs[abs] = group
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.record(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.errs = append(w.errs, err)
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) record(ev fsnotify.Event) {
	var kind ChangeKind
	switch {
	case ev.Has(fsnotify.Create):
		kind = ChangeCreated
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		kind = ChangeRemoved
	case ev.Has(fsnotify.Write):
		kind = ChangeWritten
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	group, ok := w.dirs[filepath.Dir(ev.Name)]
	if !ok {
		return
	}
	c := Change{Group: group, Filename: filepath.Base(ev.Name), Kind: kind}
	// Collapse repeated notifications for the same file.
	for i, p := range w.pending {
		if p.Group == c.Group && p.Filename == c.Filename {
			if p.Kind != ChangeCreated || c.Kind == ChangeRemoved {
				w.pending[i].Kind = c.Kind
			}
			return
		}
	}
	w.pending = append(w.pending, c)
}

// Poll returns and clears the changes gathered since the last call.
func (w *Watcher) Poll() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.pending
	w.pending = nil
	return out
}

// Errors returns and clears watch errors.
func (w *Watcher) Errors() []error {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.errs
	w.errs = nil
	return out
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	err := w.fsw.Close()
	<-w.done
	return err
}
