package schedule

import (
	"strings"
	"time"
)

// DayBucket is one of the seven weekday identifiers used for the schedule tabs.
type DayBucket string

const (
	Senin  DayBucket = "senin"
	Selasa DayBucket = "selasa"
	Rabu   DayBucket = "rabu"
	Kamis  DayBucket = "kamis"
	Jumat  DayBucket = "jumat"
	Sabtu  DayBucket = "sabtu"
	Minggu DayBucket = "minggu"
)

// AllDays is the tab order, Monday first.
var AllDays = []DayBucket{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu, Minggu}

var weekdayBuckets = map[time.Weekday]DayBucket{
	time.Monday:    Senin,
	time.Tuesday:   Selasa,
	time.Wednesday: Rabu,
	time.Thursday:  Kamis,
	time.Friday:    Jumat,
	time.Saturday:  Sabtu,
	time.Sunday:    Minggu,
}

var bucketInfo = map[DayBucket]struct {
	display string
	weekday time.Weekday
}{
	Senin:  {"Senin", time.Monday},
	Selasa: {"Selasa", time.Tuesday},
	Rabu:   {"Rabu", time.Wednesday},
	Kamis:  {"Kamis", time.Thursday},
	Jumat:  {"Jumat", time.Friday},
	Sabtu:  {"Sabtu", time.Saturday},
	Minggu: {"Minggu", time.Sunday},
}

func BucketForWeekday(w time.Weekday) DayBucket {
	return weekdayBuckets[w]
}

// ParseDayBucket accepts a bucket identifier or an English weekday name,
// case-insensitively.
func ParseDayBucket(s string) (DayBucket, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := bucketInfo[DayBucket(s)]; ok {
		return DayBucket(s), true
	}
	for w, b := range weekdayBuckets {
		if strings.ToLower(w.String()) == s {
			return b, true
		}
	}
	return "", false
}

func (d DayBucket) DisplayName() string {
	return bucketInfo[d].display
}

// Weekday is the English weekday the upstream uses for this bucket.
func (d DayBucket) Weekday() time.Weekday {
	return bucketInfo[d].weekday
}

func (d DayBucket) Valid() bool {
	_, ok := bucketInfo[d]
	return ok
}

// SelectDay returns the persisted selection when it is a valid bucket,
// otherwise the bucket for now's weekday.
func SelectDay(persisted string, now time.Time) DayBucket {
	if d, ok := ParseDayBucket(persisted); ok {
		return d
	}
	if d, ok := weekdayBuckets[now.Weekday()]; ok {
		return d
	}
	return Senin
}
