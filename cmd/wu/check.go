package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"wu/internal/diagfmt"
	"wu/internal/driver"
	"wu/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Check wu source for lexical and syntax errors",
	Long:  `Check parses a file or every .wu file under a directory and reports diagnostics. Without a path the nearest wu.toml decides what to check. Exit status is non-zero when errors are found.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("cache", false, "skip files whose content is unchanged since the last clean check")
	checkCmd.Flags().Bool("ui", false, "show interactive progress (directories only)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no wu.toml found; pass a file or directory explicitly, e.g.:\n  wu check path/to/src")
		}
		src := manifest.Config.Check.Source
		if src == "" {
			src = "."
		}
		path = filepath.Join(manifest.Root, src)
		if manifest.Config.Check.MaxDiagnostics > 0 {
			if err := cmd.Root().PersistentFlags().Set("max-diagnostics",
				strconv.Itoa(manifest.Config.Check.MaxDiagnostics)); err != nil {
				return err
			}
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return checkDir(cmd, path)
	}
	return checkFile(cmd, path)
}

func checkFile(cmd *cobra.Command, path string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	result, err := driver.Parse(path, maxDiagnostics)
	if err != nil {
		return err
	}
	reportDiagnostics(cmd, result)
	if n := result.Bag.ErrorCount(); n > 0 {
		return fmt.Errorf("found %d error(s)", n)
	}
	return nil
}

func checkDir(cmd *cobra.Command, dir string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	useCache, _ := cmd.Flags().GetBool("cache")
	useUI, _ := cmd.Flags().GetBool("ui")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	files, err := driver.SourceFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .wu files under %s", dir)
	}

	var cache *driver.DiskCache
	if useCache {
		cache, err = driver.OpenDiskCache("wu")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	// resolve cache hits up front; only misses get parsed
	var hits []string
	keys := make(map[string]driver.Digest, len(files))
	toParse := files
	if cache != nil {
		hits, toParse = resolveCacheHits(cache, files, keys)
	}

	var events chan ui.Event
	var uiDone chan error
	interactive := useUI && isTerminal(os.Stdout)
	if interactive {
		events = make(chan ui.Event, len(files))
		uiDone = make(chan error, 1)
		go func() {
			uiDone <- ui.RunProgress("checking "+dir, files, events)
		}()
		for i, path := range hits {
			events <- ui.Event{Path: path, Done: i + 1, Total: len(files)}
		}
	}

	cachedCount := len(hits)
	results, err := driver.ParseFiles(context.Background(), toParse, driver.DirOptions{
		MaxDiagnostics: maxDiagnostics,
		OnResult: func(res driver.DirEntryResult, done, total int) {
			if events != nil {
				ev := ui.Event{Path: res.Path, Done: cachedCount + done, Total: len(files)}
				if res.Err != nil {
					ev.Failed = true
				} else {
					ev.Errors = res.Result.Bag.ErrorCount()
				}
				events <- ev
			}
		},
	})
	if events != nil {
		close(events)
		<-uiDone
	}
	if err != nil {
		return err
	}

	totalErrors := 0
	brokenFiles := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			brokenFiles++
			continue
		}
		reportDiagnostics(cmd, res.Result)
		n := res.Result.Bag.ErrorCount()
		totalErrors += n
		if cache != nil {
			key, ok := keys[res.Path]
			if !ok {
				key = res.Result.File.Hash
			}
			storeCacheResult(cache, key, res.Path, res.Result, n)
		}
	}

	if totalErrors > 0 || brokenFiles > 0 {
		return fmt.Errorf("found %d error(s) in %d file(s)", totalErrors, len(files))
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "checked %d file(s): ok\n", len(files))
	}
	return nil
}

func reportDiagnostics(cmd *cobra.Command, result *driver.ParseResult) {
	if result.Bag.Len() == 0 {
		return
	}
	result.Bag.Sort()
	diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
}

// resolveCacheHits splits files into clean cache hits and files that need
// parsing, filling keys with each file's content digest. Only clean results
// count as hits: a cached entry with errors is re-parsed so its diagnostics
// get rendered again.
func resolveCacheHits(cache *driver.DiskCache, files []string, keys map[string]driver.Digest) (hits, toParse []string) {
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			toParse = append(toParse, path)
			continue
		}
		key := sha256.Sum256(content)
		keys[path] = key
		var payload driver.CheckPayload
		if hit, _ := cache.Get(key, &payload); hit && payload.ErrorCount == 0 {
			hits = append(hits, path)
			continue
		}
		toParse = append(toParse, path)
	}
	return hits, toParse
}

// storeCacheResult records a clean parse in the cache. Files with errors are
// never stored, so every later run re-parses and re-reports them.
func storeCacheResult(cache *driver.DiskCache, key driver.Digest, path string, result *driver.ParseResult, errCount int) {
	if errCount > 0 {
		return
	}
	_ = cache.Put(key, &driver.CheckPayload{
		Path:        path,
		ContentHash: result.File.Hash,
		DiagCount:   result.Bag.Len(),
		ErrorCount:  errCount,
		Codes:       diagnosticCodes(result),
	})
}

func diagnosticCodes(result *driver.ParseResult) []uint16 {
	codes := make([]uint16, 0, result.Bag.Len())
	for _, d := range result.Bag.Items() {
		codes = append(codes, uint16(d.Code))
	}
	return codes
}
