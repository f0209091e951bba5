package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// languageSeeds cover every construct the printer distinguishes.
var languageSeeds = []string{
	"",
	"ls | where size > 10kb | sort-by name\n",
	"let x = {a: 1, b: [1 2 3]} # trailing\n",
	"def greet [name: string, --loud (-l)] {\n  print $\"hi ($name)\"\n}\n",
	"match $x {\n  1 => 'one',\n  _ => \"other\"\n}\n",
	"[1, 2, 3] | each {|it| $it * 2 }\n",
	"echo r#'raw \"text\"'# `tick`\n",
	"if true {\n\n\n  ls\n\n} else { pwd }\n",
	"$env.config = {\n  show_banner: false\n  table: { mode: rounded }\n}\n",
	"(ls\n| get name)\n",
	"{color:#fff}\n",
	"{\n  time: 10:30:00\n  a: 1 b:2:\n}\n",
	"let args = [--release --locked --all-features --workspace --no-default-features --target x86_64-unknown-linux-gnu]\n",
	"{\n  a: --x\n}\n",
	"[^git status foo-bar-baz]\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "format", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по фикстурам форматтера, добавляем все *.nu файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".nu" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
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

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
