package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// writeWorkerScript installs a fake download worker that records its
// arguments, snapshots the locator file, and plays back the given body.
func writeWorkerScript(t *testing.T, body string) (bin, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	t.Setenv("STORMFETCH_TEST_ARGS", argsFile)

	script := `#!/bin/sh
printf '%s\n' "$@" > "$STORMFETCH_TEST_ARGS"
prev=""
for arg in "$@"; do
	if [ "$prev" = "-i" ]; then
		cp "$arg" "$STORMFETCH_TEST_ARGS.links"
	fi
	prev="$arg"
done
` + body + "\n"

	bin = filepath.Join(dir, "fake-worker")
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatalf("writing worker script: %v", err)
	}
	return bin, argsFile
}

func recordedArgs(t *testing.T, argsFile string) []string {
	t.Helper()
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// linkFilePath digs the -i argument out of the recorded invocation.
func linkFilePath(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "-i" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("no -i flag in worker args: %v", args)
	return ""
}

func testEngine(bin string) *Engine {
	return &Engine{bin: bin, log: zerolog.Nop()}
}

func TestDownloadMissingDependency(t *testing.T) {
	engine := testEngine("stormfetch-no-such-worker")
	outDir := filepath.Join(t.TempDir(), "never-created")

	_, err := engine.Download(context.Background(), []string{"https://example.com/a.txt"}, Options{OutputDir: outDir})
	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DependencyError, got %v", err)
	}
	if depErr.Name != "stormfetch-no-such-worker" {
		t.Errorf("unexpected dependency name %q", depErr.Name)
	}
	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Errorf("output directory was created despite missing dependency")
	}
}

func TestDownloadReportsProgressAndPaths(t *testing.T) {
	bin, argsFile := writeWorkerScript(t, `echo "Download complete: https://example.com/a.txt"
echo "some unrelated noise"
echo "Download complete: https://example.com/b.txt"`)
	engine := testEngine(bin)
	outDir := t.TempDir()

	var events [][2]int
	locators := []string{"https://example.com/a.txt", "https://example.com/b.txt?download=1"}
	files, err := engine.Download(context.Background(), locators, Options{
		OutputDir: outDir,
		ProgressFunc: func(completed, total int) {
			events = append(events, [2]int{completed, total})
		},
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 progress events, got %d", len(events))
	}
	for i, event := range events {
		if event[0] != i+1 || event[1] != 2 {
			t.Errorf("event %d = %v, want [%d 2]", i, event, i+1)
		}
	}

	want := []string{
		filepath.Join(outDir, "a.txt"),
		filepath.Join(outDir, "b.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %d paths, want %d", len(files), len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("path %d = %q, want %q", i, files[i], want[i])
		}
	}

	args := recordedArgs(t, argsFile)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-j 3") || !strings.Contains(joined, "-x 16") || !strings.Contains(joined, "-s 16") {
		t.Errorf("worker args missing fixed policy flags: %v", args)
	}
	if !strings.Contains(joined, "-d "+outDir) {
		t.Errorf("worker args missing output directory flag: %v", args)
	}

	links, err := os.ReadFile(argsFile + ".links")
	if err != nil {
		t.Fatalf("reading locator file snapshot: %v", err)
	}
	gotLinks := strings.Split(strings.TrimSpace(string(links)), "\n")
	if len(gotLinks) != 2 || gotLinks[0] != locators[0] || gotLinks[1] != locators[1] {
		t.Errorf("locator file contents = %v, want %v", gotLinks, locators)
	}

	if _, statErr := os.Stat(linkFilePath(t, args)); !os.IsNotExist(statErr) {
		t.Errorf("locator temp file still exists after successful download")
	}
}

func TestDownloadWorkerFailure(t *testing.T) {
	bin, argsFile := writeWorkerScript(t, `echo "Download complete: partial"
exit 3`)
	engine := testEngine(bin)

	_, err := engine.Download(context.Background(), []string{"https://example.com/a.txt"}, Options{OutputDir: t.TempDir()})
	var exitErr *WorkerExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected WorkerExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.Code)
	}

	args := recordedArgs(t, argsFile)
	if _, statErr := os.Stat(linkFilePath(t, args)); !os.IsNotExist(statErr) {
		t.Errorf("locator temp file still exists after worker failure")
	}
}

func TestDownloadExtractPassthrough(t *testing.T) {
	// The fake worker materializes the downloaded file; a plain .txt
	// passes through extraction unchanged.
	bin, _ := writeWorkerScript(t, `prev=""
for arg in "$@"; do
	if [ "$prev" = "-d" ]; then
		echo "payload" > "$arg/report.txt"
	fi
	prev="$arg"
done
echo "Download complete: report.txt"`)
	engine := testEngine(bin)
	outDir := t.TempDir()

	files, err := engine.Download(context.Background(), []string{"https://example.com/report.txt"}, Options{
		OutputDir: outDir,
		Extract:   true,
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(outDir, "report.txt") {
		t.Fatalf("got files %v", files)
	}
}

func TestDownloadEmptyLocatorList(t *testing.T) {
	engine := testEngine("stormfetch-no-such-worker")
	files, err := engine.Download(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("Download of empty list: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("got files %v for empty locator list", files)
	}
}
