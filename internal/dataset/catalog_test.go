package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

func TestReadCatalogAndFilterYears(t *testing.T) {
	path := writeCatalogCSV(t, "event_id,Year,ef_rating\n1,2013,2\n2,2014,0\n3,2014,4\n4,2022,1\n")

	catalog, err := ReadCatalog(path)
	if err != nil {
		t.Fatalf("ReadCatalog: %v", err)
	}
	if len(catalog.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(catalog.Rows))
	}

	filtered, err := catalog.FilterYears([]int{2014, 2022})
	if err != nil {
		t.Fatalf("FilterYears: %v", err)
	}
	if len(filtered.Rows) != 3 {
		t.Fatalf("got %d filtered rows, want 3", len(filtered.Rows))
	}
	for _, row := range filtered.Rows {
		if row[1] != "2014" && row[1] != "2022" {
			t.Errorf("row %v slipped through the year filter", row)
		}
	}
}

func TestFilterYearsNoYearsReturnsAll(t *testing.T) {
	path := writeCatalogCSV(t, "year,value\n2017,a\n2018,b\n")
	catalog, err := ReadCatalog(path)
	if err != nil {
		t.Fatalf("ReadCatalog: %v", err)
	}
	filtered, err := catalog.FilterYears(nil)
	if err != nil {
		t.Fatalf("FilterYears: %v", err)
	}
	if len(filtered.Rows) != 2 {
		t.Errorf("got %d rows, want all 2", len(filtered.Rows))
	}
}

func TestFilterYearsMissingColumn(t *testing.T) {
	path := writeCatalogCSV(t, "event_id,rating\n1,2\n")
	catalog, err := ReadCatalog(path)
	if err != nil {
		t.Fatalf("ReadCatalog: %v", err)
	}
	if _, err := catalog.FilterYears([]int{2014}); err == nil {
		t.Errorf("expected an error for a catalog without a year column")
	}
}

func TestReadCatalogEmptyFile(t *testing.T) {
	path := writeCatalogCSV(t, "")
	if _, err := ReadCatalog(path); err == nil {
		t.Errorf("expected an error for an empty catalog")
	}
}
