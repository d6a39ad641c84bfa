package model

import "path/filepath"

// Dataset describes one sample slide in the local test database
type Dataset struct {
	Name        string // subdirectory under the database dir
	FileName    string // file name on disk
	URL         string // download source
	PyramidName string // derived pyramidal copy, empty if none is produced
}

// Dir returns the dataset directory under the given database dir
func (d Dataset) Dir(databaseDir string) string {
	return filepath.Join(databaseDir, d.Name)
}

// NeedsPyramid returns true if the dataset gets a derived pyramidal copy
func (d Dataset) NeedsPyramid() bool {
	return d.PyramidName != ""
}

// Datasets is the fixed set of sample slides the harness keeps cached locally.
// The MIDOG TIFF is flat and gets rewritten as a tiled pyramid after download;
// the two Aperio SVS slides are used as-is.
var Datasets = []Dataset{
	{
		Name:        "MIDOG",
		FileName:    "001.tiff",
		URL:         "https://springernature.figshare.com/ndownloader/files/40282099",
		PyramidName: "001_pyramid.tiff",
	},
	{
		Name:     "x20_svs",
		FileName: "CMU-1-Small-Region.svs",
		URL:      "https://openslide.cs.cmu.edu/download/openslide-testdata/Aperio/CMU-1-Small-Region.svs",
	},
	{
		Name:     "x40_svs",
		FileName: "JP2K-33003-2.svs",
		URL:      "https://openslide.cs.cmu.edu/download/openslide-testdata/Aperio/JP2K-33003-2.svs",
	},
}

// DefaultSlidePath returns the slide opened by the reader check: the x40 SVS
// sample, resolved against the same database layout the checker populates.
func DefaultSlidePath(databaseDir string) string {
	ds := Datasets[len(Datasets)-1]
	return filepath.Join(ds.Dir(databaseDir), ds.FileName)
}
