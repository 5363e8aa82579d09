package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meyerstk/stormfetch/internal/extract"
	"github.com/meyerstk/stormfetch/internal/utils"
)

// workerBin is the external multi-connection download worker the engine
// orchestrates.
const workerBin = "aria2c"

// Fixed worker policy: 3 concurrent file transfers, 16 splits and 16
// connections per file. The engine performs no concurrent downloading of
// its own.
const (
	maxConcurrentFiles = 3
	splitsPerFile      = 16
	connectionsPerFile = 16
)

// Options configures a single Download call.
type Options struct {
	// OutputDir is where files land; the working directory when unset.
	OutputDir string

	// Bucket, when set, treats each locator as a bare object key and
	// resolves it against the proxy mirror.
	Bucket string

	// Extract runs recognized archives through the extractor and returns
	// member paths instead of archive paths.
	Extract bool

	// ProgressFunc receives one event per file the worker reports
	// complete, in stream order (not necessarily locator order).
	ProgressFunc func(completed, total int)

	// ExtractProgressFunc receives one event per downloaded file the
	// extractor processes.
	ExtractProgressFunc func(processed, total int)
}

// Engine drives the external download worker for batches of locators.
type Engine struct {
	bin string
	log zerolog.Logger
}

func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		bin: workerBin,
		log: logger,
	}
}

// Download fetches every locator into the output directory and returns
// the resulting local paths: extracted archive members when
// opts.Extract is set, raw downloaded files otherwise. The worker
// process inherits ctx, so callers may impose cancellation or a
// deadline; a background context preserves the historical unbounded
// behavior.
func (e *Engine) Download(ctx context.Context, locators []string, opts Options) ([]string, error) {
	if len(locators) == 0 {
		return nil, nil
	}
	logger := e.log.With().Str("job", uuid.New().String()[:8]).Logger()

	// Fail before touching the filesystem if the worker is absent.
	binPath, err := exec.LookPath(e.bin)
	if err != nil {
		logger.Error().Str("op", "fetch/download").Msgf("Worker %q not found on PATH", e.bin)
		return nil, &DependencyError{Name: e.bin}
	}

	links := ResolveLocators(locators, opts.Bucket)
	if opts.OutputDir != "" {
		if err := utils.EnsureDir(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("error creating output directory: %v", err)
		}
	}

	linkFile, err := writeLinkFile(links)
	if err != nil {
		return nil, err
	}
	defer os.Remove(linkFile)
	logger.Debug().Str("op", "fetch/download").Msgf("Locator file created at %s", linkFile)

	if err := e.runWorker(ctx, binPath, linkFile, len(links), opts, logger); err != nil {
		return nil, err
	}

	downloadDir := opts.OutputDir
	if downloadDir == "" {
		downloadDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error resolving working directory: %v", err)
		}
	}
	downloaded := make([]string, 0, len(links))
	for _, link := range links {
		downloaded = append(downloaded, filepath.Join(downloadDir, utils.LocalName(link)))
	}
	logger.Info().Str("op", "fetch/download").Msgf("Downloaded %d file(s) to %s", len(downloaded), downloadDir)

	if !opts.Extract {
		return downloaded, nil
	}
	extractor := &extract.Extractor{ProgressFunc: opts.ExtractProgressFunc}
	results, report := extractor.Extract(downloaded, downloadDir)
	if len(report.Failed) > 0 {
		logger.Warn().Str("op", "fetch/download").Msgf("%d file(s) failed to extract", len(report.Failed))
	}
	return results, nil
}

// writeLinkFile writes one locator per line to a scoped temporary file.
// The caller owns removal.
func writeLinkFile(links []string) (string, error) {
	tempFile, err := os.CreateTemp("", "stormfetch-links-*.txt")
	if err != nil {
		return "", fmt.Errorf("error creating locator file: %v", err)
	}
	for _, link := range links {
		if _, err := fmt.Fprintln(tempFile, link); err != nil {
			tempFile.Close()
			os.Remove(tempFile.Name())
			return "", fmt.Errorf("error writing locator file: %v", err)
		}
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("error closing locator file: %v", err)
	}
	return tempFile.Name(), nil
}

func (e *Engine) runWorker(ctx context.Context, binPath, linkFile string, total int, opts Options, logger zerolog.Logger) error {
	args := []string{
		"-j", fmt.Sprint(maxConcurrentFiles),
		"-x", fmt.Sprint(connectionsPerFile),
		"-s", fmt.Sprint(splitsPerFile),
		"-i", linkFile,
	}
	if opts.OutputDir != "" {
		args = append(args, "-d", opts.OutputDir)
	}
	cmd := exec.CommandContext(ctx, binPath, args...)
	logger.Debug().Str("op", "fetch/download").Msgf("Executing worker command: %s", cmd.String())

	// Merge stdout and stderr into one pipe so completion markers are
	// seen in stream order while the worker runs.
	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("error creating output pipe: %v", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return fmt.Errorf("error starting worker: %v", err)
	}
	pw.Close()

	progress := newWatcher(total, opts.ProgressFunc, logger)
	progress.consume(pr)
	pr.Close()

	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			logger.Error().Str("op", "fetch/download").Msgf("Worker failed with exit status %d", exitErr.ExitCode())
			return &WorkerExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("error waiting for worker: %v", err)
	}
	logger.Debug().Str("op", "fetch/download").Msgf("Worker reported %d of %d file(s) complete", progress.completed(), total)
	return nil
}
