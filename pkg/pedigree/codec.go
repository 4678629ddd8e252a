package pedigree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pedikit/pedikit/pkg/errors"
)

// dataset is the on-disk envelope for a pedigree file.
//
// JSON:
//
//	{
//	  "individuals": [
//	    {"name": "gf", "sex": "male", "founder": true},
//	    {"name": "child", "sex": "female", "mother": "gm", "father": "gf"}
//	  ]
//	}
//
// TOML uses one [[individuals]] table per record with the same keys.
type dataset struct {
	Individuals []*Individual `json:"individuals" toml:"individuals"`
}

// ReadJSON decodes a JSON pedigree dataset from r.
//
// Each record must have a "name" field. Sex defaults to "unknown" when
// omitted. ReadJSON performs only decode-level checks (well-formed JSON,
// non-empty names); run Validate for referential and sex-role integrity.
//
// The returned Pedigree is independent of r and can be used safely after
// ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Pedigree, error) {
	var data dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode pedigree JSON")
	}
	return fromDataset(data)
}

// ReadTOML decodes a TOML pedigree dataset from r.
// The checks and defaults match ReadJSON.
func ReadTOML(r io.Reader) (*Pedigree, error) {
	var data dataset
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode pedigree TOML")
	}
	return fromDataset(data)
}

// fromDataset applies record-level defaults and builds the Pedigree.
func fromDataset(data dataset) (*Pedigree, error) {
	for i, ind := range data.Individuals {
		if ind == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "record %d is empty", i)
		}
		if ind.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidName, "record %d has no name", i)
		}
		if ind.Sex == "" {
			ind.Sex = SexUnknown
		}
	}
	return New(data.Individuals), nil
}

// ImportFile reads a pedigree dataset from path, selecting the codec by file
// extension: .json for JSON, .toml for TOML.
//
// The error wraps the underlying cause with the file path for context and
// carries errors.ErrCodeFileNotFound when the file does not exist.
func ImportFile(path string) (*Pedigree, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		p, err := ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return p, nil
	case ".toml":
		p, err := ReadTOML(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return p, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported pedigree file extension %q (use .json or .toml)", filepath.Ext(path))
	}
}

// WriteJSON serializes the pedigree to pretty-printed JSON bytes in the same
// envelope ImportFile reads, preserving dataset order.
func WriteJSON(p *Pedigree) ([]byte, error) {
	data := dataset{Individuals: p.Individuals()}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal pedigree")
	}
	return append(out, '\n'), nil
}
