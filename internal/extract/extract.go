package extract

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Report lists which input files were processed and which were dropped
// after an extraction error.
type Report struct {
	Extracted []string
	Failed    []string
}

type Extractor struct {
	// ProgressFunc is called after each input file is processed, whether
	// it succeeded or not.
	ProgressFunc func(processed, total int)
}

// Extract post-processes downloaded files. Recognized archives (.zip,
// .tar.gz, .tgz) are expanded into outputDir and the archive itself is
// deleted; anything else passes through unchanged. A file that fails to
// extract is logged and omitted from the result, the rest of the batch
// continues.
func (x *Extractor) Extract(files []string, outputDir string) ([]string, Report) {
	var results []string
	var report Report
	for i, filePath := range files {
		collected, err := x.extractOne(filePath, outputDir)
		if err != nil {
			log.Error().Str("op", "extract/extract").Err(err).Msgf("Failed to extract %s", filePath)
			report.Failed = append(report.Failed, filePath)
		} else {
			results = append(results, collected...)
			report.Extracted = append(report.Extracted, filePath)
		}
		if x.ProgressFunc != nil {
			x.ProgressFunc(i+1, len(files))
		}
	}
	return results, report
}

func (x *Extractor) extractOne(filePath, outputDir string) ([]string, error) {
	switch {
	case strings.HasSuffix(filePath, ".zip"):
		members, err := unzip(filePath, outputDir)
		if err != nil {
			return nil, err
		}
		if err := os.Remove(filePath); err != nil {
			return nil, fmt.Errorf("error removing archive: %v", err)
		}
		log.Info().Str("op", "extract/extract").Msgf("Extracted and deleted %s", filePath)
		return members, nil
	case strings.HasSuffix(filePath, ".tar.gz"), strings.HasSuffix(filePath, ".tgz"):
		members, err := untar(filePath, outputDir)
		if err != nil {
			return nil, err
		}
		if err := os.Remove(filePath); err != nil {
			return nil, fmt.Errorf("error removing archive: %v", err)
		}
		log.Info().Str("op", "extract/extract").Msgf("Extracted and deleted %s", filePath)
		return members, nil
	default:
		return []string{filePath}, nil
	}
}

func unzip(filePath, outputDir string) ([]string, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening zip: %v", err)
	}
	defer reader.Close()

	var members []string
	for _, member := range reader.File {
		target, err := memberPath(outputDir, member.Name)
		if err != nil {
			return nil, err
		}
		if member.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, fmt.Errorf("error creating directory: %v", err)
			}
			members = append(members, target)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("error creating directory: %v", err)
		}
		src, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening zip member %s: %v", member.Name, err)
		}
		if err := writeMember(target, src); err != nil {
			src.Close()
			return nil, err
		}
		src.Close()
		members = append(members, target)
	}
	return members, nil
}

func untar(filePath, outputDir string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening archive: %v", err)
	}
	defer file.Close()
	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("error reading gzip stream: %v", err)
	}
	defer gzReader.Close()
	tarReader := tar.NewReader(gzReader)

	// Only regular file members are materialized and reported; directory
	// entries are implied by member paths.
	var members []string
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading tar stream: %v", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		target, err := memberPath(outputDir, header.Name)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, fmt.Errorf("error creating directory: %v", err)
		}
		if err := writeMember(target, tarReader); err != nil {
			return nil, err
		}
		members = append(members, target)
	}
	return members, nil
}

func writeMember(target string, src io.Reader) error {
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("error creating file: %v", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("error writing %s: %v", target, err)
	}
	return nil
}

// memberPath joins a member name under outputDir and rejects names that
// would escape it.
func memberPath(outputDir, name string) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}
	target := filepath.Join(outputDir, name)
	rel, err := filepath.Rel(outputDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal member path: %s", name)
	}
	return target, nil
}
