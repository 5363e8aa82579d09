package utils

import (
	"fmt"
	"net/url"
	"os"
	"path"
)

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// LocalName returns the expected on-disk name for a locator: the final
// segment of its URL path with any query string stripped.
func LocalName(locator string) string {
	parsed, err := url.Parse(locator)
	if err != nil {
		return path.Base(locator)
	}
	return path.Base(parsed.Path)
}

func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
