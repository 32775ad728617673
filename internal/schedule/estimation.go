package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// UpdateMarker is the upstream token for an episode that already aired.
const UpdateMarker = "Update"

type EstimateKind int

const (
	EstimateMalformed EstimateKind = iota
	EstimateUpdate
	EstimateParsed
)

func (k EstimateKind) String() string {
	switch k {
	case EstimateUpdate:
		return "update"
	case EstimateParsed:
		return "parsed"
	default:
		return "malformed"
	}
}

// Estimate is the result of parsing an estimation string. Days, Hours and
// Minutes are only meaningful when Kind is EstimateParsed.
type Estimate struct {
	Kind    EstimateKind
	Days    int
	Hours   int
	Minutes int
}

var estimationPattern = regexp.MustCompile(`(\d+)d\s+(\d+)h\s+(\d+)m`)

// ParseEstimation never fails: anything that is neither the update marker
// nor a "<d>d <h>h <m>m" countdown is EstimateMalformed.
func ParseEstimation(raw string) Estimate {
	if raw == UpdateMarker {
		return Estimate{Kind: EstimateUpdate}
	}

	match := estimationPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return Estimate{Kind: EstimateMalformed}
	}

	days, errD := strconv.Atoi(match[1])
	hours, errH := strconv.Atoi(match[2])
	minutes, errM := strconv.Atoi(match[3])
	if errD != nil || errH != nil || errM != nil {
		// digit runs too long for int
		return Estimate{Kind: EstimateMalformed}
	}

	return Estimate{
		Kind:    EstimateParsed,
		Days:    days,
		Hours:   hours,
		Minutes: minutes,
	}
}

// Until is the countdown as a duration. Zero unless parsed.
func (e Estimate) Until() time.Duration {
	if e.Kind != EstimateParsed {
		return 0
	}
	return time.Duration(e.Days)*24*time.Hour +
		time.Duration(e.Hours)*time.Hour +
		time.Duration(e.Minutes)*time.Minute
}
