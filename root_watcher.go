package nin

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// rootWatcher logs file creation/removal under a Daemon's served root. It
// exists purely for operator visibility: the Daemon always re-reads from
// disk on every request, so a dropped or delayed fsnotify event never
// changes what a client sees, only what shows up in the log.
type rootWatcher struct {
	w      *fsnotify.Watcher
	logger *log.Logger
}

func newRootWatcher(root string, logger *log.Logger) (*rootWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(root); err != nil {
		w.Close()
		return nil, err
	}
	return &rootWatcher{w: w, logger: logger}, nil
}

// run drains events until stop closes the watcher. It's meant to be handed
// to an errgroup.Group so Daemon.Stop can wait for it to actually exit.
func (rw *rootWatcher) run() error {
	for {
		select {
		case event, ok := <-rw.w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				rw.logger.Printf("dcache: root watch: %s %s", event.Op, event.Name)
			}
		case err, ok := <-rw.w.Errors:
			if !ok {
				return nil
			}
			rw.logger.Printf("dcache: root watch error: %s", err)
		}
	}
}

func (rw *rootWatcher) stop() {
	rw.w.Close()
}
