package feature

import (
	"reflect"
	"sort"
	"testing"

	"github.com/kailas-cloud/carprice/internal/domain/selection"
)

func scenarioSchema() Schema {
	return MustSchema("Year", "Kms_driven", "Label", "Mumbai", "Petrol", "Maruti", "Maruti 800")
}

func scenarioSelection() selection.Selection {
	return selection.Selection{
		Company:   "Maruti",
		Name:      "Maruti 800",
		Year:      2018,
		KmsDriven: 40000,
		FuelType:  "Petrol",
		Location:  "Mumbai",
		Label:     "GOLD",
	}
}

func TestBuild_Scenario_ExactMatches(t *testing.T) {
	v, m := Build(scenarioSelection(), scenarioSchema())

	want := map[string]float64{
		"Year":       2018,
		"Kms_driven": 40000,
		"Label":      0,
		"Mumbai":     1,
		"Petrol":     1,
		"Maruti":     1,
		"Maruti 800": 1,
	}
	if got := v.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("vector mismatch:\ngot:  %v\nwant: %v", got, want)
	}

	for _, f := range Fields {
		if m[f].Outcome != OutcomeExact {
			t.Errorf("field %s: expected outcome %q, got %q", f, OutcomeExact, m[f].Outcome)
		}
	}
}

func TestBuild_Scenario_NameFallbackSkipsCompanyColumn(t *testing.T) {
	sel := scenarioSelection()
	sel.Name = "Maruti 800 LXI"

	v, m := Build(sel, scenarioSchema())

	if got, _ := v.Get("Maruti 800"); got != 1 {
		t.Errorf("expected Maruti 800 = 1, got %v", got)
	}
	if got, _ := v.Get("Maruti"); got != 1 {
		t.Errorf("expected company column Maruti = 1, got %v", got)
	}
	if m[FieldName].Outcome != OutcomeFallback {
		t.Errorf("expected fallback outcome, got %q", m[FieldName].Outcome)
	}
	if m[FieldName].Column != "Maruti 800" {
		t.Errorf("expected fallback column %q, got %q", "Maruti 800", m[FieldName].Column)
	}
}

func TestBuild_FallbackFirstInSchemaOrderWins(t *testing.T) {
	schema := MustSchema("Year", "Kms_driven", "Label", "Maruti 800", "Maruti Zen")
	sel := selection.Selection{Company: "Maruti", Name: "Maruti Alto"}

	v, m := Build(sel, schema)

	if got, _ := v.Get("Maruti 800"); got != 1 {
		t.Errorf("expected Maruti 800 = 1, got %v", got)
	}
	if got, _ := v.Get("Maruti Zen"); got != 0 {
		t.Errorf("expected Maruti Zen = 0, got %v", got)
	}
	if m[FieldName].Column != "Maruti 800" {
		t.Errorf("expected first column to win, got %q", m[FieldName].Column)
	}
}

func TestBuild_FallbackRequiresCompanySubstring(t *testing.T) {
	schema := MustSchema("Year", "Swift Dzire", "Maruti Swift Dzire")
	sel := selection.Selection{Company: "Maruti", Name: "Swift VXI"}

	v, _ := Build(sel, schema)

	if got, _ := v.Get("Swift Dzire"); got != 0 {
		t.Errorf("column without company must not match, got %v", got)
	}
	if got, _ := v.Get("Maruti Swift Dzire"); got != 1 {
		t.Errorf("expected Maruti Swift Dzire = 1, got %v", got)
	}
}

func TestBuild_FallbackIsCaseSensitive(t *testing.T) {
	schema := MustSchema("Year", "maruti 800")
	sel := selection.Selection{Company: "Maruti", Name: "Maruti Alto"}

	_, m := Build(sel, schema)

	if m[FieldName].Outcome != OutcomeNone {
		t.Errorf("expected no match, got %+v", m[FieldName])
	}
}

func TestBuild_BlankNameSetsNothing(t *testing.T) {
	schema := MustSchema("Year", "Kms_driven", "Label", "Maruti", "Maruti 800")
	sel := selection.Selection{Company: "Maruti", Name: "   "}

	v, m := Build(sel, schema)

	if m[FieldName].Outcome != OutcomeNone {
		t.Errorf("expected no name match, got %+v", m[FieldName])
	}
	if got, _ := v.Get("Maruti 800"); got != 0 {
		t.Errorf("expected Maruti 800 = 0, got %v", got)
	}
}

func TestBuild_NoMatchLeavesIndicatorsZero(t *testing.T) {
	sel := selection.Selection{
		Company:  "Tata",
		Name:     "Tata Nano",
		FuelType: "CNG",
		Location: "Delhi",
		Label:    "PLATINUM",
		Year:     2010,
	}

	v, m := Build(sel, scenarioSchema())

	for _, col := range []string{"Mumbai", "Petrol", "Maruti", "Maruti 800"} {
		if got, _ := v.Get(col); got != 0 {
			t.Errorf("expected %s = 0, got %v", col, got)
		}
	}
	for _, f := range Fields {
		if m[f].Outcome != OutcomeNone {
			t.Errorf("field %s: expected none, got %q", f, m[f].Outcome)
		}
		if m[f].Column != "" {
			t.Errorf("field %s: expected empty column, got %q", f, m[f].Column)
		}
	}
	if got, _ := v.Get("Label"); got != 1 {
		t.Errorf("expected Label = 1, got %v", got)
	}
}

func TestBuild_ColumnSetEqualsSchema(t *testing.T) {
	schemas := []Schema{
		scenarioSchema(),
		MustSchema("Mumbai"),
		MustSchema("Petrol", "Diesel", "Year"),
	}
	sel := scenarioSelection()
	sel.Name = "Hyundai i20"
	sel.Location = "Pune"

	for _, schema := range schemas {
		v, _ := Build(sel, schema)

		got := make([]string, 0, v.Len())
		for c := range v.Map() {
			got = append(got, c)
		}
		want := schema.Columns()
		sort.Strings(got)
		sort.Strings(want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("column set mismatch:\ngot:  %v\nwant: %v", got, want)
		}
	}
}

func TestBuild_LabelEncoding(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"GOLD", 0},
		{"PLATINUM", 1},
		{"", 0},
		{"DIAMOND", 0},
	}

	for _, tc := range tests {
		sel := scenarioSelection()
		sel.Label = tc.label
		v, _ := Build(sel, scenarioSchema())
		if got, _ := v.Get(ColumnLabel); got != tc.want {
			t.Errorf("label %q: got %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestBuild_NumericPassthroughWithoutClamping(t *testing.T) {
	sel := scenarioSelection()
	sel.Year = 1850
	sel.KmsDriven = -12

	v, _ := Build(sel, scenarioSchema())

	if got, _ := v.Get(ColumnYear); got != 1850 {
		t.Errorf("expected Year 1850, got %v", got)
	}
	if got, _ := v.Get(ColumnKmsDriven); got != -12 {
		t.Errorf("expected Kms_driven -12, got %v", got)
	}
}

func TestBuild_SchemaWithoutNumericColumns(t *testing.T) {
	schema := MustSchema("Mumbai", "Maruti")

	v, _ := Build(scenarioSelection(), schema)

	if v.Len() != 2 {
		t.Fatalf("expected 2 columns, got %d", v.Len())
	}
	if _, ok := v.Get(ColumnYear); ok {
		t.Error("Year must not be added to a schema that lacks it")
	}
}

func TestBuild_ExactMatchLeavesOtherIndicatorsOff(t *testing.T) {
	schema := MustSchema("Year", "Mumbai", "Pune", "Delhi")
	sel := selection.Selection{Location: "Pune"}

	v, _ := Build(sel, schema)

	want := []float64{0, 0, 1, 0}
	if got := v.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
