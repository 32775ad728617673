package schedule

import (
	"testing"
	"time"
)

type parseTestCase struct {
	name     string
	raw      string
	expected Estimate
}

func TestParseEstimation(t *testing.T) {
	testCases := []parseTestCase{
		{"UpdateMarker", "Update", Estimate{Kind: EstimateUpdate}},
		{"SameDay", "0d 2h 15m", Estimate{Kind: EstimateParsed, Days: 0, Hours: 2, Minutes: 15}},
		{"FutureDay", "1d 5h 00m", Estimate{Kind: EstimateParsed, Days: 1, Hours: 5, Minutes: 0}},
		{"ExtraWhitespace", "  2d   3h  4m ", Estimate{Kind: EstimateParsed, Days: 2, Hours: 3, Minutes: 4}},
		{"EmbeddedInText", "tayang 0d 1h 2m lagi", Estimate{Kind: EstimateParsed, Days: 0, Hours: 1, Minutes: 2}},
		{"LowercaseUpdate", "update", Estimate{Kind: EstimateMalformed}},
		{"Empty", "", Estimate{Kind: EstimateMalformed}},
		{"Garbage", "soon", Estimate{Kind: EstimateMalformed}},
		{"MissingMinutes", "1d 2h", Estimate{Kind: EstimateMalformed}},
		{"NoSpaces", "1d2h3m", Estimate{Kind: EstimateMalformed}},
		{"HugeNumber", "99999999999999999999d 1h 1m", Estimate{Kind: EstimateMalformed}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseEstimation(tc.raw)
			if got != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestEstimate_Until(t *testing.T) {
	est := ParseEstimation("1d 2h 30m")
	expected := 26*time.Hour + 30*time.Minute
	if est.Until() != expected {
		t.Errorf("Expected %v, got %v", expected, est.Until())
	}

	if ParseEstimation("Update").Until() != 0 {
		t.Errorf("Expected zero duration for update marker")
	}
	if ParseEstimation("soon").Until() != 0 {
		t.Errorf("Expected zero duration for malformed estimation")
	}
}

func TestEstimateKind_String(t *testing.T) {
	if EstimateParsed.String() != "parsed" || EstimateUpdate.String() != "update" || EstimateMalformed.String() != "malformed" {
		t.Errorf("Unexpected kind names: %s %s %s", EstimateParsed, EstimateUpdate, EstimateMalformed)
	}
}
