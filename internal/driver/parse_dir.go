package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DirEntryResult is the outcome for one file of a directory parse.
type DirEntryResult struct {
	Path   string
	Result *ParseResult
	Err    error
}

// DirOptions configures ParseDir.
type DirOptions struct {
	MaxDiagnostics int
	// Concurrency limits parallel file parses; <= 0 means GOMAXPROCS.
	Concurrency int
	// OnResult, when set, is called once per finished file with a running
	// done/total count. Calls are serialized.
	OnResult func(res DirEntryResult, done, total int)
}

// ParseDir parses every .wu file under dir in parallel. Results come back
// sorted by path regardless of completion order, so output is deterministic.
func ParseDir(ctx context.Context, dir string, opts DirOptions) ([]DirEntryResult, error) {
	paths, err := SourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return ParseFiles(ctx, paths, opts)
}

// ParseFiles parses the given files in parallel, results in input order.
func ParseFiles(ctx context.Context, paths []string, opts DirOptions) ([]DirEntryResult, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]DirEntryResult, len(paths))

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, parseErr := Parse(path, opts.MaxDiagnostics)
			entry := DirEntryResult{Path: path, Result: res, Err: parseErr}
			results[i] = entry

			if opts.OnResult != nil {
				mu.Lock()
				done++
				opts.OnResult(entry, done, len(paths))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SourceFiles gathers .wu files under root, sorted by path, skipping hidden
// directories.
func SourceFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && len(name) > 1 && name[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".wu" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
