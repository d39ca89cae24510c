package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/audio"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
	"github.com/spf13/afero"
)

// Scanner scans directories concurrently using a worker pool
type Scanner struct {
	fs         afero.Fs
	workers    int
	metaReader *MetadataReader
}

// NewScanner creates a new file scanner
func NewScanner(fs afero.Fs, workers int) *Scanner {
	if workers <= 0 {
		workers = 4 // Default worker count
	}
	return &Scanner{
		fs:         fs,
		workers:    workers,
		metaReader: NewMetadataReader(fs),
	}
}

// Scan walks paths and returns channels for items and errors. Both channels
// are closed once every file has been processed.
func (s *Scanner) Scan(ctx context.Context, paths []string) (<-chan api.CatalogItem, <-chan error) {
	items := make(chan api.CatalogItem, 100)
	errs := make(chan error, 10)
	files := make(chan string, 100)

	report := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}

	// Start file discovery goroutine
	go func() {
		defer close(files)
		for _, root := range paths {
			if ctx.Err() != nil {
				return
			}

			err := afero.Walk(s.fs, root, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					report(&playerrors.ScanError{Path: p, Err: err})
					return nil
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if !info.IsDir() && audio.IsSupported(p) {
					select {
					case files <- p:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				return nil
			})

			if err != nil && !errors.Is(err, context.Canceled) {
				report(&playerrors.ScanError{Path: root, Err: err})
			}
		}
	}()

	// Start worker pool
	workersLeft := make(chan struct{}, s.workers)
	for i := 0; i < s.workers; i++ {
		go func() {
			defer func() { workersLeft <- struct{}{} }()
			for filePath := range files {
				if ctx.Err() != nil {
					return
				}

				item, err := s.read(filePath)
				if err != nil {
					report(&playerrors.ScanError{Path: filePath, Err: err})
					continue
				}

				select {
				case items <- item:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close channels when done
	go func() {
		for i := 0; i < s.workers; i++ {
			<-workersLeft
		}
		close(items)
		close(errs)
	}()

	return items, errs
}

// read reads one file. A panic in a tag reader fails that file only.
func (s *Scanner) read(filePath string) (item api.CatalogItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read metadata: panic: %v", r)
		}
	}()
	return s.metaReader.Read(filePath)
}

// ScanAll runs Scan to completion and returns items ordered by artist, then title.
func (s *Scanner) ScanAll(ctx context.Context, paths []string) ([]api.CatalogItem, []error) {
	itemCh, errCh := s.Scan(ctx, paths)

	var found []api.CatalogItem
	var scanErrs []error
	for itemCh != nil || errCh != nil {
		select {
		case item, ok := <-itemCh:
			if !ok {
				itemCh = nil
				continue
			}
			found = append(found, item)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			scanErrs = append(scanErrs, err)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Artist != found[j].Artist {
			return found[i].Artist < found[j].Artist
		}
		if found[i].Title != found[j].Title {
			return found[i].Title < found[j].Title
		}
		return found[i].AudioLocator < found[j].AudioLocator
	})
	return found, scanErrs
}

// ScanFile scans a single file and returns its catalog item
func (s *Scanner) ScanFile(filePath string) (api.CatalogItem, error) {
	if !audio.IsSupported(filePath) {
		return api.CatalogItem{}, playerrors.ErrInvalidFormat
	}
	return s.read(filePath)
}
