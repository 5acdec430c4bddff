package server

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"resumatch/internal/errors"
)

// CertWatcher watches certificate files on disk and invokes a callback
// when any of them change. Changes are debounced because certificate
// rotation typically rewrites several files in quick succession, and
// atomic writes (write to temp, rename over) are caught by watching the
// parent directories as well as the files.
type CertWatcher struct {
	mu sync.RWMutex

	files    []string
	modTimes map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	done       chan struct{}
	reloadChan chan struct{}

	onChange func()
	logger   *errors.Logger

	running bool
}

// NewCertWatcher creates a watcher over the non-empty paths among
// certFile, keyFile and caFile. A zero debounceDelay defaults to one
// second.
func NewCertWatcher(certFile, keyFile, caFile string, debounceDelay time.Duration, onChange func(), logger *errors.Logger) (*CertWatcher, error) {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	var files []string
	for _, f := range []string{certFile, keyFile, caFile} {
		if f != "" {
			files = append(files, f)
		}
	}

	return &CertWatcher{
		files:         files,
		modTimes:      make(map[string]time.Time),
		debounceDelay: debounceDelay,
		done:          make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		onChange:      onChange,
		logger:        logger,
	}, nil
}

// Start begins watching. It records each file's current modification time
// so that the first change event can be distinguished from noise.
func (cw *CertWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := cw.snapshotModTimes(); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && cw.logger != nil {
			cw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
		return fmt.Errorf("failed to get initial file modification times: %w", err)
	}
	cw.fsWatcher = watcher

	for _, file := range cw.files {
		if err := cw.watch(file); err != nil && cw.logger != nil {
			cw.logger.Warn("Failed to watch certificate file", "file", file, "error", err)
		}
	}

	cw.running = true
	go cw.run()

	if cw.logger != nil {
		cw.logger.Info("Certificate file watcher started",
			"files", cw.files,
			"debounce_delay", cw.debounceDelay)
	}
	return nil
}

// Stop stops the watcher and releases the underlying fsnotify resources.
func (cw *CertWatcher) Stop() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return nil
	}

	close(cw.done)

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	if cw.fsWatcher != nil {
		if err := cw.fsWatcher.Close(); err != nil {
			if cw.logger != nil {
				cw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	cw.running = false

	if cw.logger != nil {
		cw.logger.Info("Certificate file watcher stopped")
	}

	return nil
}

// watch registers a file and its parent directory with fsnotify. The
// directory watch catches renames from atomic writes; a missing file is
// tolerated by watching only the directory until it appears.
func (cw *CertWatcher) watch(file string) error {
	if err := cw.fsWatcher.Add(file); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to watch file %s: %w", file, err)
		}
		if cw.logger != nil {
			cw.logger.Info("Certificate file missing, watching directory instead",
				"file", file)
		}
	}

	dir := filepath.Dir(file)
	if err := cw.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	return nil
}

// snapshotModTimes records the current mtime of each watched file.
func (cw *CertWatcher) snapshotModTimes() error {
	for _, file := range cw.files {
		stat, err := os.Stat(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat file %s: %w", file, err)
		}
		cw.modTimes[file] = stat.ModTime()
	}
	return nil
}

// changed reports whether file has been modified or deleted since the
// last check, updating the recorded mtime as a side effect.
func (cw *CertWatcher) changed(file string) bool {
	stat, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			if _, tracked := cw.modTimes[file]; tracked {
				delete(cw.modTimes, file)
				return true
			}
		}
		return false
	}

	last, tracked := cw.modTimes[file]
	if !tracked || stat.ModTime().After(last) {
		cw.modTimes[file] = stat.ModTime()
		return true
	}
	return false
}

func (cw *CertWatcher) anyChanged() bool {
	return slices.ContainsFunc(cw.files, cw.changed)
}

// run is the watcher event loop. fsnotify events only schedule a
// debounced check; the reload callback fires after the debounce window
// if a real mtime change is confirmed.
func (cw *CertWatcher) run() {
	for {
		select {
		case event, ok := <-cw.fsWatcher.Events:
			if !ok {
				return
			}
			if cw.relevant(event) {
				cw.scheduleReload()
			}

		case err, ok := <-cw.fsWatcher.Errors:
			if !ok {
				return
			}
			if cw.logger != nil {
				cw.logger.LogError(err, "File watcher error")
			}

		case <-cw.reloadChan:
			if cw.anyChanged() {
				if cw.logger != nil {
					cw.logger.Info("Certificate files changed, triggering reload")
				}
				cw.onChange()
			}

		case <-cw.done:
			return
		}
	}
}

// relevant reports whether an event concerns a watched file. Directory
// events are matched by base name since atomic writes rename a temp file
// over the target.
func (cw *CertWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return slices.ContainsFunc(cw.files, func(file string) bool {
		return event.Name == file || filepath.Base(event.Name) == filepath.Base(file)
	})
}

// scheduleReload arms (or re-arms) the debounce timer.
func (cw *CertWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}

	cw.debounceTimer = time.AfterFunc(cw.debounceDelay, func() {
		select {
		case cw.reloadChan <- struct{}{}:
		default:
		}
	})
}

// IsRunning reports whether the watcher loop is active.
func (cw *CertWatcher) IsRunning() bool {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.running
}

// GetWatchedFiles returns the watched file paths.
func (cw *CertWatcher) GetWatchedFiles() []string {
	return slices.Clone(cw.files)
}
