package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
  "extra_strategies": [
    {
      "name": "Sanya red-eye",
      "legs": [
        {"mode": "taxi", "origin": "海口", "destination": "三亚", "cost": 60, "hours": 1.5},
        {"mode": "flight", "origin": "三亚", "destination": "上海", "cost": 420, "hours": 2.6, "price_key": "syx_sha_20260301", "notes": "red-eye"}
      ],
      "risks": ["late arrival"]
    }
  ],
  "direct_to_shanghai": [
    {"flight_cost": 650, "flight_hours": 2.5, "flight_no": "HU7101", "price_key": "hak_sha_20260227", "rail_cost": 35, "rail_hours": 0.45}
  ],
  "hidden_city_like": [
    {"segment_cost_estimate": 480, "segment_hours": 2.6, "rail_cost": 35, "rail_hours": 0.45}
  ]
}`

func TestRecordsFollowCategoryOrder(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	recs, err := ds.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	want := []Category{CategoryDirect, CategoryHiddenCity, CategoryExtra}
	for i, r := range recs {
		if r.Category() != want[i] {
			t.Fatalf("record %d category = %s, want %s", i, r.Category(), want[i])
		}
	}

	direct := recs[0].(DirectRecord)
	if direct.FlightCost != 650 || direct.PriceKey != "hak_sha_20260227" || direct.FlightNo != "HU7101" {
		t.Fatalf("direct record = %+v", direct)
	}

	extra := recs[2].(ExtraRecord)
	if extra.Name != "Sanya red-eye" || len(extra.Legs) != 2 || len(extra.Risks) != 1 {
		t.Fatalf("extra record = %+v", extra)
	}
	if extra.Legs[1].PriceKey != "syx_sha_20260301" || extra.Legs[1].Notes != "red-eye" {
		t.Fatalf("extra leg = %+v", extra.Legs[1])
	}
}

func TestRecordsMissingRequiredField(t *testing.T) {
	cases := []struct {
		name  string
		ds    Dataset
		field string
	}{
		{
			name:  "direct without rail_hours",
			ds:    Dataset{"direct_to_shanghai": []any{map[string]any{"flight_cost": 1, "flight_hours": 1, "rail_cost": 1}}},
			field: "rail_hours",
		},
		{
			name:  "two hop without transfer city",
			ds:    Dataset{"leave_hainan_then_transfer": []any{map[string]any{"first_hop_to": "广州"}}},
			field: "transfer_city",
		},
		{
			name: "extra leg without hours",
			ds: Dataset{"extra_strategies": []any{map[string]any{
				"name": "x",
				"legs": []any{map[string]any{"mode": "rail", "origin": "a", "destination": "b", "cost": 1}},
			}}},
			field: "legs[0].hours",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.ds.Records()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("error %v is not ErrMissingField", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FieldError", err)
			}
			if fe.Field != c.field {
				t.Fatalf("field = %q, want %q", fe.Field, c.field)
			}
		})
	}
}

func TestRecordsWrongType(t *testing.T) {
	ds := Dataset{"direct_to_shanghai": []any{map[string]any{
		"flight_cost": "cheap", "flight_hours": 1, "rail_cost": 1, "rail_hours": 1,
	}}}
	_, err := ds.Records()
	if !errors.Is(err, ErrFieldType) {
		t.Fatalf("error = %v, want ErrFieldType", err)
	}
}

func TestRecordsRejectsEmptyExtraLegs(t *testing.T) {
	ds := Dataset{"extra_strategies": []any{map[string]any{"name": "x", "legs": []any{}}}}
	if _, err := ds.Records(); !errors.Is(err, ErrFieldType) {
		t.Fatalf("error = %v, want ErrFieldType", err)
	}
}

func TestRecordsOptionalGroundDefaults(t *testing.T) {
	ds := Dataset{"visa_free_outbound_then_back": []any{map[string]any{
		"country": "马来西亚", "back_to_china_city": "厦门",
		"outbound_cost": 500, "outbound_hours": 3, "inbound_cost": 600, "inbound_hours": 3.5,
	}}}
	recs, err := ds.Records()
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	v := recs[0].(VisaFreeRecord)
	if v.GroundCost != 0 || v.GroundHours != 0 {
		t.Fatalf("ground defaults = %v/%v, want 0/0", v.GroundCost, v.GroundHours)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	if _, err := Decode(strings.NewReader(`[1, 2]`)); err == nil {
		t.Fatal("expected error for top-level array")
	}
}

func TestSaveAndLoad(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "options.json")
	if err := Save(path, ds); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), "海口") {
		t.Fatalf("non-ASCII text was escaped:\n%s", raw)
	}
	if !strings.HasSuffix(string(raw), "}\n") {
		t.Fatalf("missing trailing newline")
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	recs, err := back.Records()
	if err != nil || len(recs) != 3 {
		t.Fatalf("records after reload: %d, %v", len(recs), err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}
