package dataprocessing

import (
	"sort"
	"time"

	"opsdash/pkg/contracts/domain"
)

// FilterByDate returns the subsequence of records whose date falls inside
// the inclusive interval. Dateless records pass through, and an interval
// with an empty bound disables filtering entirely. The originals are never
// modified; a fresh slice is returned.
func FilterByDate[T domain.Dated](records []T, iv domain.DateInterval) []T {
	if iv.Unbounded() {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if iv.Contains(r.DateKey()) {
			out = append(out, r)
		}
	}
	return out
}

// CollectDates extracts the canonical dates of a record sequence. Lexical
// fallback values that never normalized to YYYY-MM-DD are excluded, so
// they cannot seed the selectable ranges.
func CollectDates[T domain.Dated](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if d := r.DateKey(); IsCanonicalDate(d) {
			out = append(out, d)
		}
	}
	return out
}

// DistinctDates deduplicates and sorts canonical dates ascending. Lexical
// order equals chronological order for fixed-width dates.
func DistinctDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if !IsCanonicalDate(d) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// QuickRange is a named date-interval preset anchored to the observed
// date extremes.
type QuickRange struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// QuickRanges derives the selectable presets from the sorted distinct
// dates of all sources. "Today" is the most recent observed date, not the
// wall-clock day, so stale sheets still yield a usable default.
func QuickRanges(dates []string) []QuickRange {
	if len(dates) == 0 {
		return nil
	}
	earliest, latest := dates[0], dates[len(dates)-1]

	anchor, err := time.Parse("2006-01-02", latest)
	if err != nil {
		return []QuickRange{{ID: "all", Label: "All Time", Start: earliest, End: latest}}
	}
	day := func(d time.Time) string { return d.Format("2006-01-02") }
	yesterday := day(anchor.AddDate(0, 0, -1))

	return []QuickRange{
		{ID: "today", Label: "Today", Start: latest, End: latest},
		{ID: "yesterday", Label: "Yesterday", Start: yesterday, End: yesterday},
		{ID: "last7", Label: "Last 7 Days", Start: day(anchor.AddDate(0, 0, -7)), End: latest},
		{ID: "last30", Label: "Last 30 Days", Start: day(anchor.AddDate(0, 0, -30)), End: latest},
		{ID: "all", Label: "All Time", Start: earliest, End: latest},
	}
}
