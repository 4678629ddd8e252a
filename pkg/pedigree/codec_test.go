package pedigree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pedikit/pedikit/pkg/errors"
)

const trioJSON = `{
  "individuals": [
    {"name": "dad", "sex": "male"},
    {"name": "mom", "sex": "female"},
    {"name": "kid", "mother": "mom", "father": "dad"}
  ]
}`

func TestReadJSON(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(trioJSON))
	if err != nil {
		t.Fatalf("ReadJSON error: %v", err)
	}

	if p.Len() != 3 {
		t.Errorf("Len = %d, want 3", p.Len())
	}

	// Omitted sex defaults to unknown.
	kid, ok := p.Individual("kid")
	if !ok {
		t.Fatal("kid not indexed")
	}
	if kid.Sex != SexUnknown {
		t.Errorf("kid sex = %q, want %q", kid.Sex, SexUnknown)
	}
}

func TestReadJSONUnknownField(t *testing.T) {
	input := `{"individuals": [{"name": "x", "age": 40}]}`
	if _, err := ReadJSON(strings.NewReader(input)); err == nil {
		t.Error("unknown field should be rejected")
	}
}

func TestReadJSONEmptyName(t *testing.T) {
	input := `{"individuals": [{"sex": "male"}]}`
	_, err := ReadJSON(strings.NewReader(input))
	if errors.GetCode(err) != errors.ErrCodeInvalidName {
		t.Errorf("expected %s, got %v", errors.ErrCodeInvalidName, err)
	}
}

func TestReadTOML(t *testing.T) {
	input := `
[[individuals]]
name = "dad"
sex = "male"

[[individuals]]
name = "mom"
sex = "female"

[[individuals]]
name = "kid"
mother = "mom"
father = "dad"
mz_twin = "t1"
`
	p, err := ReadTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTOML error: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len = %d, want 3", p.Len())
	}
	kid, _ := p.Individual("kid")
	if kid.MZTwin != "t1" {
		t.Errorf("kid mz_twin = %q, want t1", kid.MZTwin)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.json")
	if err := os.WriteFile(path, []byte(trioJSON), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile error: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len = %d, want 3", p.Len())
	}
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.json"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("expected %s, got %v", errors.ErrCodeFileNotFound, err)
	}
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.csv")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportFile(path)
	if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("expected %s, got %v", errors.ErrCodeUnsupported, err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	orig := trio()

	data, err := WriteJSON(orig)
	if err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	decoded, err := ReadJSON(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("decode written JSON: %v", err)
	}

	if decoded.Len() != orig.Len() {
		t.Fatalf("round trip lost individuals: %d != %d", decoded.Len(), orig.Len())
	}
	for i, ind := range orig.Individuals() {
		got := decoded.Individuals()[i]
		if got.Name != ind.Name || got.Sex != ind.Sex || got.Mother != ind.Mother || got.Father != ind.Father {
			t.Errorf("individual %d differs after round trip: %+v vs %+v", i, got, ind)
		}
	}
}
