// Package dataset holds the per-dataset configuration the download
// engine is pointed at: known archive locators, catalog endpoints, and
// the managed bucket that curated artifacts are uploaded to.
package dataset

// Config parameterizes the generic engine for one dataset.
type Config struct {
	Name             string
	Bucket           string
	CatalogURL       string
	Locators         []string
	DefaultOutputDir string
}

// TorNet is the MIT Lincoln Laboratory tornado radar dataset, mirrored
// on Zenodo as one tar.gz archive per year.
func TorNet() Config {
	return Config{
		Name:       "tornet",
		Bucket:     "TornadoPrediction",
		CatalogURL: "https://zenodo.org/records/12636522/files/catalog.csv?download=1",
		Locators: []string{
			"https://zenodo.org/records/12636522/files/tornet_2013.tar.gz?download=1",
			"https://zenodo.org/records/12637032/files/tornet_2014.tar.gz?download=1",
			"https://zenodo.org/records/12655151/files/tornet_2015.tar.gz?download=1",
			"https://zenodo.org/records/12655179/files/tornet_2016.tar.gz?download=1",
			"https://zenodo.org/records/12655183/files/tornet_2017.tar.gz?download=1",
			"https://zenodo.org/records/12655187/files/tornet_2018.tar.gz?download=1",
			"https://zenodo.org/records/12655716/files/tornet_2019.tar.gz?download=1",
			"https://zenodo.org/records/12655717/files/tornet_2020.tar.gz?download=1",
			"https://zenodo.org/records/12655718/files/tornet_2021.tar.gz?download=1",
			"https://zenodo.org/records/12655719/files/tornet_2022.tar.gz?download=1",
		},
		DefaultOutputDir: "./data_tornet",
	}
}

// GOES is the NOAA GOES satellite imagery companion dataset, paired to
// TorNet events by location and timestamp.
func GOES() Config {
	return Config{
		Name:             "goes",
		Bucket:           "TornadoPrediction-GOES",
		CatalogURL:       "https://f000.backblazeb2.com/file/TornadoPrediction-GOES/goes.csv",
		DefaultOutputDir: "./data_goes",
	}
}
