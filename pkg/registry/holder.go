package registry

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder keeps the latest Definition loaded from a registry file and reloads
// it when the file changes. Forms built from an earlier definition keep their
// registry; callers pick up the new one through OnChange or Get.
type Holder struct {
	mu       sync.RWMutex
	def      Definition
	path     string
	options  []Option
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(Definition)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder loads the registry at path.
func NewHolder(path string, logger zerolog.Logger, options ...Option) (*Holder, error) {
	def, err := LoadFile(path, options...)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("registry: absolute path: %w", err)
	}

	return &Holder{
		def:     def,
		path:    absPath,
		options: options,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Get returns the current definition.
func (h *Holder) Get() Definition {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.def
}

// Reload re-reads the registry file. On failure the previous definition is
// kept and the error returned.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading registry")

	def, err := LoadFile(h.path, h.options...)
	if err != nil {
		h.logger.Error().Err(err).Msg("registry reload failed, keeping previous definition")
		return err
	}

	h.mu.Lock()
	previous := h.def
	h.def = def
	listeners := slices.Clone(h.onChange)
	h.mu.Unlock()

	if previous.Registry.Len() != def.Registry.Len() {
		h.logger.Info().
			Int("old", previous.Registry.Len()).
			Int("new", def.Registry.Len()).
			Msg("field count changed")
	}

	for _, fn := range listeners {
		fn(def)
	}
	return nil
}

// OnChange registers a listener invoked after every successful reload.
func (h *Holder) OnChange(fn func(Definition)) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Watch starts watching the registry file. The parent directory is watched so
// editors that save atomically are picked up.
func (h *Holder) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("registry: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("registry: watch directory: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop()

	h.logger.Debug().Str("path", h.path).Msg("watching registry file")
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			h.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("registry file changed")
			_ = h.Reload()

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("registry watcher error")

		case <-h.stopCh:
			return
		}
	}
}
