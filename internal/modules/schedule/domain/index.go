package domain

// IndexedEntry is an entry flattened out of the document with its
// position, as stored by the search projection.
type IndexedEntry struct {
	ID       string
	Kind     PendingKind
	Weekday  int
	DateKey  string
	Position int
	Entry    Entry
}

// Slot names the partition slot: a weekday name or a date key.
func (e IndexedEntry) Slot() string {
	if e.Kind == PendingWeekly {
		return WeekdayName(e.Weekday)
	}
	return e.DateKey
}

// Flatten lists every entry of doc, weekly slots first. IDs are left empty.
func Flatten(doc Document) []IndexedEntry {
	var out []IndexedEntry
	for weekday, slot := range doc.Week {
		for i, e := range slot {
			out = append(out, IndexedEntry{Kind: PendingWeekly, Weekday: weekday, Position: i, Entry: e})
		}
	}
	for key, entries := range doc.Day {
		for i, e := range entries {
			out = append(out, IndexedEntry{Kind: PendingDated, Weekday: -1, DateKey: key, Position: i, Entry: e})
		}
	}
	return out
}
