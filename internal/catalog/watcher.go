package catalog

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher reloads the catalog when its source file changes, so a
// fresh product export picks up without a restart. A reload that
// fails keeps the previous table.
type Watcher struct {
	store *Store
	path  string
	log   *zap.Logger

	fw   *fsnotify.Watcher
	stop chan struct{}
	done chan struct{}
}

func NewWatcher(path string, store *Store, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: exporters typically replace
	// the file by rename, which drops a file-level watch.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		store: store,
		path:  path,
		log:   log,
		fw:    fw,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	close(w.stop)
	<-w.done
	return w.fw.Close()
}

func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				pending = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watch error", zap.Error(err))

		case <-pending:
			timer = nil
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	f, err := os.Open(w.path)
	if err != nil {
		w.log.Warn("catalog reload open failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	defer func() { _ = f.Close() }()

	products, rep, err := ReadProducts(f)
	if err != nil {
		w.log.Warn("catalog reload failed, keeping previous table",
			zap.String("path", w.path), zap.Error(err))
		return
	}

	w.store.Replace(products)
	w.log.Info("catalog reloaded",
		zap.Int("products", len(products)),
		zap.Int("skipped", rep.Skipped),
		zap.Int("duplicates", rep.Duplicates))
}
