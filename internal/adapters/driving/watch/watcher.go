// Package watch ingests guideline files dropped into a directory. New
// and modified text files are picked up via fsnotify and fed to the
// ingest service; ingestion is rate limited so a bulk copy into the
// directory does not monopolise the store.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
	"github.com/clindex-labs/clindex-cli/internal/logger"
)

// ingestRate bounds automatic ingestion to a couple of documents per
// second with a small burst for initial directory scans.
const (
	ingestRate  = 2.0
	ingestBurst = 4
)

// mimeByExtension maps the file extensions the watcher picks up.
var mimeByExtension = map[string]string{
	".txt": "text/plain",
	".md":  "text/markdown",
}

// Watcher feeds dropped files to the ingest service.
type Watcher struct {
	ingest  driving.IngestService
	limiter *rate.Limiter
}

// New creates a watcher over the given ingest service.
func New(ingest driving.IngestService) *Watcher {
	return &Watcher{
		ingest:  ingest,
		limiter: rate.NewLimiter(rate.Limit(ingestRate), ingestBurst),
	}
}

// Run ingests the files already present in dir, then watches it until
// the context is cancelled. Per-file failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if err := w.scanExisting(ctx, dir); err != nil {
		return err
	}

	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.ingestFile(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// scanExisting ingests files already in the directory at startup.
func (w *Watcher) scanExisting(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read watch directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		w.ingestFile(ctx, filepath.Join(dir, entry.Name()))
	}

	return nil
}

// ingestFile ingests a single file if its extension is supported.
// Failures are logged, never fatal to the watch loop.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	mimeType, ok := mimeByExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		logger.Debug("Skipping %s: unsupported extension", path)
		return
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Read %s: %v", path, err)
		return
	}
	if len(content) == 0 {
		// Creation events often arrive before the first write.
		return
	}

	receipt, err := w.ingest.Ingest(ctx, domain.RawDocument{
		URI:      "file://" + path,
		MIMEType: mimeType,
		Content:  content,
		Title:    titleFromPath(path),
	})
	if err != nil {
		logger.Warn("Ingest %s: %v", path, err)
		return
	}

	if receipt.Duplicate {
		logger.Debug("Already ingested %s", path)
		return
	}
	logger.Info("Ingested %s: %d chunks", path, receipt.Chunks)
}

// titleFromPath derives a readable title from the file name.
func titleFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
