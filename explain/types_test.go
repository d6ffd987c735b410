package explain

import "testing"

// TestFeatureTypeString tests the string representation of FeatureType
func TestFeatureTypeString(t *testing.T) {
	tests := []struct {
		ft       FeatureType
		expected string
	}{
		{Continuous, "continuous"},
		{Nominal, "nominal"},
		{Ordinal, "ordinal"},
		{FeatureType(99), "Unknown(99)"},
	}

	for _, test := range tests {
		if got := test.ft.String(); got != test.expected {
			t.Errorf("FeatureType(%d).String() = %s, expected %s", test.ft, got, test.expected)
		}
	}
}

// TestFeatureTypeCategorical tests the categorical split of feature types
func TestFeatureTypeCategorical(t *testing.T) {
	if Continuous.Categorical() {
		t.Error("Continuous should not be categorical")
	}
	if !Nominal.Categorical() {
		t.Error("Nominal should be categorical")
	}
	if !Ordinal.Categorical() {
		t.Error("Ordinal should be categorical")
	}
}

// TestFeatureMetadataNames tests name extraction in metadata order
func TestFeatureMetadataNames(t *testing.T) {
	meta := FeatureMetadata{
		{Name: "age", Type: Continuous},
		{Name: "color", Type: Nominal},
	}

	names := meta.Names()
	if len(names) != 2 || names[0] != "age" || names[1] != "color" {
		t.Errorf("Names() = %v, expected [age color]", names)
	}
}

// TestDensityTotal tests that Total sums the bin counts
func TestDensityTotal(t *testing.T) {
	d := Density{Values: []float64{0, 1, 2}, Counts: []int{3, 7}}
	if total := d.Total(); total != 10 {
		t.Errorf("Total() = %d, expected 10", total)
	}
}

// TestNewRecordIdentity tests that records get distinct IDs
func TestNewRecordIdentity(t *testing.T) {
	a := NewRecord(Local, "a", nil)
	b := NewRecord(Local, "b", nil)

	if a.ID == "" || b.ID == "" {
		t.Fatal("Expected non-empty record IDs")
	}
	if a.ID == b.ID {
		t.Errorf("Expected distinct IDs, both were %s", a.ID)
	}
	if a.Kind != Local {
		t.Errorf("Expected kind %q, got %q", Local, a.Kind)
	}
}

// TestRecordValidate tests the shape invariants of records
func TestRecordValidate(t *testing.T) {
	meta := FeatureMetadata{{Name: "x", Type: Continuous}}

	t.Run("Valid", func(t *testing.T) {
		rec := NewRecord(Global, "m", meta)
		rec.Overall = &Block{Names: []string{"x"}, Scores: []float64{1.5}}
		rec.Specific = []Block{{Names: []string{"0"}, Scores: []float64{0}}}

		if err := rec.Validate(); err != nil {
			t.Errorf("Unexpected validation error: %v", err)
		}
	})

	t.Run("NamesScoresMismatch", func(t *testing.T) {
		rec := NewRecord(Local, "m", meta)
		rec.Specific = []Block{{Names: []string{"x"}, Scores: []float64{1, 2}}}

		if err := rec.Validate(); err == nil {
			t.Error("Expected validation error for names/scores length mismatch")
		}
	})

	t.Run("GlobalBlockCountMismatch", func(t *testing.T) {
		rec := NewRecord(Global, "m", meta)
		rec.Specific = []Block{}

		if err := rec.Validate(); err == nil {
			t.Error("Expected validation error for missing global blocks")
		}
	})
}
