package upstream

import (
	"fmt"
	"net/url"
)

type RangeKind string

const (
	RangeAll    RangeKind = "all"
	RangeLast7  RangeKind = "last7"
	RangeMonth  RangeKind = "month"
	RangeCustom RangeKind = "custom"
)

// DateRange selects the analytics time window. From and To are ISO dates
// (YYYY-MM-DD) and only apply to RangeCustom.
type DateRange struct {
	Kind RangeKind
	From string
	To   string
}

func AllTime() DateRange {
	return DateRange{Kind: RangeAll}
}

func LastSevenDays() DateRange {
	return DateRange{Kind: RangeLast7}
}

func ThisMonth() DateRange {
	return DateRange{Kind: RangeMonth}
}

func Custom(from, to string) DateRange {
	return DateRange{Kind: RangeCustom, From: from, To: to}
}

// Label renders the range for display, e.g. in report headers.
func (r DateRange) Label() string {
	switch r.Kind {
	case RangeLast7:
		return "Last 7 days"
	case RangeMonth:
		return "This month"
	case RangeCustom:
		if r.From == "" || r.To == "" {
			return "All time"
		}
		return fmt.Sprintf("%s to %s", r.From, r.To)
	default:
		return "All time"
	}
}

// Query renders the range as the upstream's query-string fragment. A custom
// range missing either bound falls back to all time and produces no
// parameters.
func (r DateRange) Query() string {
	switch r.Kind {
	case RangeLast7:
		return "?range=7"
	case RangeMonth:
		return "?range=month"
	case RangeCustom:
		if r.From == "" || r.To == "" {
			return ""
		}
		return fmt.Sprintf("?from=%s&to=%s", url.QueryEscape(r.From), url.QueryEscape(r.To))
	default:
		return ""
	}
}
