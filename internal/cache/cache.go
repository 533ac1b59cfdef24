package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/workers"
)

const containerExt = ".gsc"

// SQLite journal files living next to a container.
var journalSuffixes = []string{"-wal", "-shm", "-journal"}

// Dir is a [Location] rooted at one directory.
type Dir struct {
	root     string
	maxBytes int64
	maxAge   time.Duration

	mu     sync.Mutex
	pinned map[string]int

	now    func() time.Time
	logger *logger.Logger
}

func NewDir(cfg config.ClientContainers, log *logger.Logger) (*Dir, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating container directory: %w", err)
	}
	return &Dir{
		root:     cfg.Dir,
		maxBytes: cfg.MaxBytes,
		maxAge:   cfg.MaxAge,
		pinned:   make(map[string]int),
		now:      time.Now,
		logger:   log,
	}, nil
}

func (d *Dir) ContainerPath(layerID string) string {
	return filepath.Join(d.root, url.PathEscape(layerID)+containerExt)
}

func (d *Dir) Pin(layerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pinned[layerID]++
}

func (d *Dir) Unpin(layerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pinned[layerID] <= 1 {
		delete(d.pinned, layerID)
		return
	}
	d.pinned[layerID]--
}

func (d *Dir) isPinned(layerID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pinned[layerID] > 0
}

// Remove refuses pinned layers. A missing file is not an error.
func (d *Dir) Remove(layerID string) error {
	if layerID == "" {
		return ErrInvalidLayerID
	}
	if d.isPinned(layerID) {
		return fmt.Errorf("%w: %s", ErrContainerPinned, layerID)
	}
	return d.remove(layerID)
}

func (d *Dir) remove(layerID string) error {
	path := d.ContainerPath(layerID)

	var errs []error
	for _, p := range append([]string{path}, journalPaths(path)...) {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func journalPaths(path string) []string {
	out := make([]string, 0, len(journalSuffixes))
	for _, s := range journalSuffixes {
		out = append(out, path+s)
	}
	return out
}

type entry struct {
	layerID string
	size    int64
	modTime time.Time
}

// Sweep evicts unpinned containers older than the maximum age, then the least
// recently modified ones until the directory fits the size budget. A zero
// limit disables its rule.
func (d *Dir) Sweep(ctx context.Context) ([]string, error) {
	entries, err := d.scan()
	if err != nil {
		return nil, err
	}

	var (
		evicted []string
		total   int64
		keep    = entries[:0]
		now     = d.now()
	)
	for _, e := range entries {
		total += e.size
	}

	evict := func(e entry) error {
		if err := d.remove(e.layerID); err != nil {
			return err
		}
		total -= e.size
		evicted = append(evicted, e.layerID)
		return nil
	}

	for _, e := range entries {
		if err = ctx.Err(); err != nil {
			return evicted, err
		}
		if d.maxAge > 0 && now.Sub(e.modTime) > d.maxAge && !d.isPinned(e.layerID) {
			if err = evict(e); err != nil {
				return evicted, err
			}
			continue
		}
		keep = append(keep, e)
	}

	if d.maxBytes > 0 && total > d.maxBytes {
		sort.Slice(keep, func(i, j int) bool { return keep[i].modTime.Before(keep[j].modTime) })
		for _, e := range keep {
			if total <= d.maxBytes {
				break
			}
			if d.isPinned(e.layerID) {
				continue
			}
			if err = evict(e); err != nil {
				return evicted, err
			}
		}
	}

	if len(evicted) > 0 {
		d.logger.Info().Str("func", "*Dir.Sweep").
			Strs("evicted", evicted).
			Int64("bytes", total).
			Msg("containers evicted")
	}
	return evicted, nil
}

// scan lists containers with their size including journal files.
func (d *Dir) scan() ([]entry, error) {
	files, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("error reading container directory: %w", err)
	}

	var entries []entry
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, containerExt) {
			continue
		}
		layerID, err := url.PathUnescape(strings.TrimSuffix(name, containerExt))
		if err != nil {
			continue
		}

		info, err := f.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}

		e := entry{layerID: layerID, size: info.Size(), modTime: info.ModTime()}
		for _, jp := range journalPaths(filepath.Join(d.root, name)) {
			if ji, err := os.Stat(jp); err == nil {
				e.size += ji.Size()
				if ji.ModTime().After(e.modTime) {
					e.modTime = ji.ModTime()
				}
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SweepWorker runs Sweep once per interval.
func (d *Dir) SweepWorker(interval time.Duration) workers.Worker {
	return workers.Every(interval, func(ctx context.Context) {
		if _, err := d.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Err(err).Str("func", "*Dir.SweepWorker").Msg("container sweep failed")
		}
	})
}

var _ Location = (*Dir)(nil)
