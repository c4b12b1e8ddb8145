package core

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	mustDo(t, os.MkdirAll(sub, 0755))
	a := filepath.Join(dir, "a.xlsx")
	b := filepath.Join(sub, "b.xlsx")
	mustDo(t, os.WriteFile(a, []byte("first"), 0644))
	mustDo(t, os.WriteFile(b, []byte("second"), 0644))

	dest := filepath.Join(dir, "out.zip")
	if err := Archive(dest, []string{a, b}); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	zr, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	want := map[string]string{"a.xlsx": "first", "b.xlsx": "second"}
	if len(zr.File) != len(want) {
		t.Fatalf("entries = %d, want %d", len(zr.File), len(want))
	}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if want[zf.Name] != string(data) {
			t.Errorf("entry %s = %q, want %q", zf.Name, data, want[zf.Name])
		}
	}
}

func TestArchive_MissingInput(t *testing.T) {
	dir := t.TempDir()
	if err := Archive(filepath.Join(dir, "out.zip"), []string{filepath.Join(dir, "none.xlsx")}); err == nil {
		t.Error("expected an error for a missing input file")
	}
}
