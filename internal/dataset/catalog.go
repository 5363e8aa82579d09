package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Catalog is a header-addressed view over a dataset's CSV catalog.
type Catalog struct {
	Header []string
	Rows   [][]string
}

// ReadCatalog parses a catalog CSV from a local path (typically one the
// engine just downloaded).
func ReadCatalog(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing catalog: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	log.Debug().Str("op", "dataset/catalog").Msgf("Loaded %d catalog record(s) from %s", len(records)-1, path)
	return &Catalog{Header: records[0], Rows: records[1:]}, nil
}

// FilterYears keeps rows whose year column matches one of the given
// years. The column is located case-insensitively; with no years given
// the catalog is returned unchanged.
func (c *Catalog) FilterYears(years []int) (*Catalog, error) {
	if len(years) == 0 {
		return c, nil
	}
	yearCol := -1
	for i, name := range c.Header {
		if strings.EqualFold(strings.TrimSpace(name), "year") {
			yearCol = i
			break
		}
	}
	if yearCol == -1 {
		return nil, fmt.Errorf("catalog has no year column")
	}
	wanted := make(map[int]bool, len(years))
	for _, year := range years {
		wanted[year] = true
	}
	filtered := &Catalog{Header: c.Header}
	for _, row := range c.Rows {
		if yearCol >= len(row) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[yearCol]))
		if err != nil {
			continue
		}
		if wanted[year] {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	log.Debug().Str("op", "dataset/catalog").Msgf("Filtered catalog to %d record(s)", len(filtered.Rows))
	return filtered, nil
}
