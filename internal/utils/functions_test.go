package utils

import "testing"

func TestLocalName(t *testing.T) {
	tests := []struct {
		locator string
		want    string
	}{
		{"https://zenodo.org/records/12636522/files/tornet_2013.tar.gz?download=1", "tornet_2013.tar.gz"},
		{"https://example.com/a/b/c.txt", "c.txt"},
		{"https://noaa-goes16.s3.amazonaws.com/ABI-L2-MCMIPC/2020/169/scene.nc", "scene.nc"},
		{"plain-name.zip", "plain-name.zip"},
	}
	for _, tt := range tests {
		if got := LocalName(tt.locator); got != tt.want {
			t.Errorf("LocalName(%q) = %q, want %q", tt.locator, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(512); got != "512 B" {
		t.Errorf("FormatBytes(512) = %q", got)
	}
	if got := FormatBytes(2 * 1024 * 1024); got != "2.00 MB" {
		t.Errorf("FormatBytes(2MiB) = %q", got)
	}
}
