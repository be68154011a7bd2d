package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB cap for the seed corpus

func addCorpusSeeds(f *testing.F) {
	addShowcaseSeeds(f)

	// minimal seeds in case showcase/ is missing
	f.Add([]byte{})
	f.Add([]byte("fn main() -> int { return 0; }\n"))
	f.Add([]byte("let x = 1 + 2 * 3;\n"))
	f.Add([]byte("let x = ; let y = 5;\n"))
	f.Add([]byte("\"abc"))
	f.Add([]byte("/* nested /* comment */ tail"))
	f.Add([]byte("((((((((("))
	f.Add([]byte("\x00\xff\xfe"))
}

func addShowcaseSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "showcase")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".wu" {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
