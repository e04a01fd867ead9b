package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Route category names as they appear at the top level of the dataset file.
type Category string

const (
	CategoryDirect     Category = "direct_to_shanghai"
	CategoryRailFlight Category = "haikou_to_zhanjiang_wuchuan"
	CategoryTwoHop     Category = "leave_hainan_then_transfer"
	CategoryHiddenCity Category = "hidden_city_like"
	CategoryVisaFree   Category = "visa_free_outbound_then_back"
	CategoryExtra      Category = "extra_strategies"
)

// Categories lists every known category in plan-building order.
var Categories = []Category{
	CategoryDirect,
	CategoryRailFlight,
	CategoryTwoHop,
	CategoryHiddenCity,
	CategoryVisaFree,
	CategoryExtra,
}

// Dataset is the raw route dataset: category name -> list of records.
//
// Values are kept in their decoded generic form (numbers as json.Number) so
// fields this package does not know about survive a load/patch/save cycle.
type Dataset map[string]any

// Load reads and decodes a dataset file.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", path, err)
	}
	return ds, nil
}

// Decode parses a dataset from r. The top-level JSON value must be an object.
func Decode(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("decode dataset: top-level value must be a JSON object")
	}
	return Dataset(obj), nil
}

// Encode writes the dataset as indented JSON with non-ASCII text left unescaped.
func (d Dataset) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(d)); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// Save writes the dataset to path in a single replace: the content is staged
// in a temporary file next to path and renamed over it.
func Save(path string, d Dataset) error {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save dataset: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("save dataset: write %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save dataset: close %q: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save dataset: replace %q: %w", path, err)
	}
	return nil
}

// items returns the records stored under cat. A missing category is empty;
// a category that is not a list of objects is a data-shape error.
func (d Dataset) items(cat Category) ([]map[string]any, error) {
	raw, ok := d[string(cat)]
	if !ok || raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, &FieldError{Category: cat, Index: -1, Field: string(cat), Err: ErrFieldType, Want: "list"}
	}

	out := make([]map[string]any, 0, len(list))
	for i, v := range list {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, &FieldError{Category: cat, Index: i, Err: ErrFieldType, Want: "object"}
		}
		out = append(out, obj)
	}
	return out, nil
}
