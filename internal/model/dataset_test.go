package model

import "testing"

func TestDataset_Dir(t *testing.T) {
	ds := Dataset{Name: "MIDOG", FileName: "001.tiff"}
	dir := ds.Dir("/data/test_database")

	if dir != "/data/test_database/MIDOG" {
		t.Errorf("Dataset.Dir() = %s, expected /data/test_database/MIDOG", dir)
	}
}

func TestDataset_NeedsPyramid(t *testing.T) {
	withPyramid := Dataset{Name: "MIDOG", FileName: "001.tiff", PyramidName: "001_pyramid.tiff"}
	if !withPyramid.NeedsPyramid() {
		t.Error("Expected NeedsPyramid to be true when PyramidName is set")
	}

	withoutPyramid := Dataset{Name: "x20_svs", FileName: "CMU-1-Small-Region.svs"}
	if withoutPyramid.NeedsPyramid() {
		t.Error("Expected NeedsPyramid to be false when PyramidName is empty")
	}
}

func TestDatasets_Fixed(t *testing.T) {
	if len(Datasets) != 3 {
		t.Fatalf("Expected 3 sample datasets, got %d", len(Datasets))
	}

	if Datasets[0].Name != "MIDOG" || !Datasets[0].NeedsPyramid() {
		t.Error("First dataset should be the MIDOG TIFF with a pyramid copy")
	}

	for _, ds := range Datasets[1:] {
		if ds.NeedsPyramid() {
			t.Errorf("Dataset %s should not have a pyramid copy", ds.Name)
		}
	}
}

func TestDefaultSlidePath(t *testing.T) {
	path := DefaultSlidePath("/data/test_database")
	expected := "/data/test_database/x40_svs/JP2K-33003-2.svs"

	if path != expected {
		t.Errorf("DefaultSlidePath() = %s, expected %s", path, expected)
	}
}

func TestReport_Failed(t *testing.T) {
	report := &Report{}
	report.Add(StepResult{Name: "test database", Status: StepStatusPassed})

	if report.Failed() {
		t.Error("Report with only passed steps should not be failed")
	}

	report.Add(StepResult{Name: "smoke test", Status: StepStatusFailed, LastError: "exit status 1"})
	if !report.Failed() {
		t.Error("Report with a failed step should be failed")
	}
}
