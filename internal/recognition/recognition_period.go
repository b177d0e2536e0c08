package recognition

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	recognitionerrors "github.com/tnoeldner/Housing-Leadership-Reports/internal/recognition/errors"
)

type PeriodKind string

const (
	Weekly    PeriodKind = "weekly"
	Monthly   PeriodKind = "monthly"
	Quarterly PeriodKind = "quarterly"
)

const dateLayout = "2006-01-02"

// WeekEndsOn is the last day of a recognition week.
const WeekEndsOn = time.Saturday

// Period is a closed date range with a stable key. From and To are inclusive
// UTC dates.
type Period struct {
	Kind PeriodKind `json:"kind"`
	Key  string     `json:"key"`
	From time.Time  `json:"from"`
	To   time.Time  `json:"to"`
}

func ParsePeriodKind(v string) (PeriodKind, error) {
	switch k := PeriodKind(strings.ToLower(strings.TrimSpace(v))); k {
	case Weekly, Monthly, Quarterly:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", recognitionerrors.ErrUnknownPeriodKind, v)
	}
}

// PeriodFor returns the period of kind that contains t.
func PeriodFor(kind PeriodKind, t time.Time) (Period, error) {
	d := dateOf(t)
	switch kind {
	case Weekly:
		offset := (int(WeekEndsOn) - int(d.Weekday()) + 7) % 7
		end := d.AddDate(0, 0, offset)
		return Period{Kind: Weekly, Key: end.Format(dateLayout), From: end.AddDate(0, 0, -6), To: end}, nil
	case Monthly:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Period{Kind: Monthly, Key: start.Format("2006-01"), From: start, To: start.AddDate(0, 1, -1)}, nil
	case Quarterly:
		fy, q := FiscalQuarter(d)
		return quarterPeriod(fy, q), nil
	default:
		return Period{}, fmt.Errorf("%w: %q", recognitionerrors.ErrUnknownPeriodKind, kind)
	}
}

// ParsePeriod resolves a stored period key. Weekly keys must fall on the
// week-ending day.
func ParsePeriod(kind PeriodKind, key string) (Period, error) {
	key = strings.TrimSpace(key)
	switch kind {
	case Weekly:
		d, err := time.Parse(dateLayout, key)
		if err != nil || d.Weekday() != WeekEndsOn {
			return Period{}, fmt.Errorf("%w: weekly key %q must be a %s in YYYY-MM-DD", recognitionerrors.ErrInvalidPeriodKey, key, WeekEndsOn)
		}
		return PeriodFor(Weekly, d)
	case Monthly:
		d, err := time.Parse("2006-01", key)
		if err != nil {
			return Period{}, fmt.Errorf("%w: monthly key %q must be YYYY-MM", recognitionerrors.ErrInvalidPeriodKey, key)
		}
		return PeriodFor(Monthly, d)
	case Quarterly:
		fy, q, err := parseQuarterKey(key)
		if err != nil {
			return Period{}, err
		}
		return quarterPeriod(fy, q), nil
	default:
		return Period{}, fmt.Errorf("%w: %q", recognitionerrors.ErrUnknownPeriodKind, kind)
	}
}

// Contains reports whether the calendar date of t is inside the period.
func (p Period) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(p.From) && !d.After(p.To)
}

func (p Period) Label() string {
	switch p.Kind {
	case Weekly:
		return "Week ending " + p.To.Format("January 2, 2006")
	case Monthly:
		return p.From.Format("January 2006")
	case Quarterly:
		fy, q, _ := parseQuarterKey(p.Key)
		return fmt.Sprintf("FY%d Q%d (%s-%s)", fy, q, p.From.Format("Jan"), p.To.Format("Jan"))
	}
	return p.Key
}

// FiscalYear names the fiscal year by its ending calendar year. The year
// starts on July 1, so July 2025 belongs to FY2026.
func FiscalYear(t time.Time) int {
	if t.Month() >= time.July {
		return t.Year() + 1
	}
	return t.Year()
}

// FiscalQuarter returns the fiscal year and quarter of t. Q1 is Jul-Sep and
// Q4 is Apr-Jun.
func FiscalQuarter(t time.Time) (int, int) {
	m := int(t.Month())
	q := ((m+5)%12)/3 + 1
	return FiscalYear(t), q
}

func quarterPeriod(fy, q int) Period {
	startMonth := time.Month((q-1)*3 + 7)
	year := fy - 1
	if startMonth > time.December {
		startMonth -= 12
		year = fy
	}
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Kind: Quarterly,
		Key:  fmt.Sprintf("FY%d-Q%d", fy, q),
		From: start,
		To:   start.AddDate(0, 3, -1),
	}
}

func parseQuarterKey(key string) (int, int, error) {
	invalid := fmt.Errorf("%w: quarterly key %q must look like FY2026-Q1", recognitionerrors.ErrInvalidPeriodKey, key)
	rest, ok := strings.CutPrefix(strings.ToUpper(key), "FY")
	if !ok {
		return 0, 0, invalid
	}
	yearPart, quarterPart, ok := strings.Cut(rest, "-Q")
	if !ok {
		return 0, 0, invalid
	}
	fy, err := strconv.Atoi(yearPart)
	if err != nil || fy < 1000 || fy > 9999 {
		return 0, 0, invalid
	}
	q, err := strconv.Atoi(quarterPart)
	if err != nil || q < 1 || q > 4 {
		return 0, 0, invalid
	}
	return fy, q, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
