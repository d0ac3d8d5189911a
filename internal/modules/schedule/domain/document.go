package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"

	apperrors "timeline/internal/platform/errors"
)

// Entry is a stored schedule item. Times are kept as typed so the
// persisted document round-trips byte for byte.
type Entry struct {
	BeginTime string `json:"beginTime"`
	EndTime   string `json:"endTime"`
	Event     string `json:"event"`
}

func (e Entry) Validate() error {
	if _, err := ParseTimeOfDay(e.BeginTime); err != nil {
		return fmt.Errorf("begin time: %w", err)
	}
	if _, err := ParseTimeOfDay(e.EndTime); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if strings.TrimSpace(e.Event) == "" {
		return &apperrors.InputError{Token: e.Event, Expected: "non-empty event label"}
	}
	return nil
}

// Document is the whole persisted schedule: seven weekly slots indexed
// Monday=0 and one-off entries keyed by YYYY-MM-DD.
type Document struct {
	Week [DaysPerWeek][]Entry `json:"week"`
	Day  map[string][]Entry   `json:"day"`
}

func NewDocument() Document {
	doc := Document{Day: map[string][]Entry{}}
	for i := range doc.Week {
		doc.Week[i] = []Entry{}
	}
	return doc
}

// AppendWeekly adds entry to the recurring slot for weekday.
func (d *Document) AppendWeekly(weekday int, entry Entry) error {
	if weekday < 0 || weekday >= DaysPerWeek {
		return &apperrors.InputError{Token: WeekdayName(weekday), Expected: weekdayGrammar, Reason: "index out of range"}
	}
	d.Week[weekday] = append(d.Week[weekday], entry)
	return nil
}

// AppendDated adds entry to the one-off list for key, creating it if absent.
func (d *Document) AppendDated(key string, entry Entry) error {
	if _, err := ParseDateKey(key); err != nil {
		return err
	}
	if d.Day == nil {
		d.Day = map[string][]Entry{}
	}
	d.Day[key] = append(d.Day[key], entry)
	return nil
}

// Count reports the number of weekly and dated entries.
func (d Document) Count() (weekly, dated int) {
	for _, slot := range d.Week {
		weekly += len(slot)
	}
	for _, entries := range d.Day {
		dated += len(entries)
	}
	return weekly, dated
}

// MarshalDocument renders the full document as indented JSON, leaving
// non-ASCII labels unescaped.
func MarshalDocument(d Document) ([]byte, error) {
	out := NewDocument()
	for i, slot := range d.Week {
		if slot != nil {
			out.Week[i] = slot
		}
	}
	for key, entries := range d.Day {
		if entries == nil {
			entries = []Entry{}
		}
		out.Day[key] = entries
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseDocument decodes persisted bytes. Comments and trailing commas are
// tolerated. Bytes that are not a JSON object yield ErrCorruptState; a
// week or day key that is present with the wrong shape yields
// ErrMalformedPartition. Absent partitions are synthesized empty.
func ParseDocument(data []byte) (Document, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &root); err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}
	if root == nil {
		return Document{}, fmt.Errorf("%w: root is not an object", apperrors.ErrCorruptState)
	}
	return decodeRoot(root)
}

// LoadDocument applies the load-time recovery policy: corrupt state is
// replaced by an empty document, malformed partitions still fail.
func LoadDocument(data []byte) (Document, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		if errors.Is(err, apperrors.ErrCorruptState) {
			return NewDocument(), nil
		}
		return Document{}, err
	}
	return doc, nil
}

// DocumentFromMap normalizes an in-memory structure with the partition
// rules of ParseDocument. A partition that cannot be encoded is malformed.
func DocumentFromMap(m map[string]any) (Document, error) {
	if m == nil {
		return NewDocument(), nil
	}
	root := make(map[string]json.RawMessage, len(partitions))
	for _, name := range partitions {
		value, ok := m[name]
		if !ok {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return Document{}, apperrors.PartitionError(name, err.Error())
		}
		root[name] = raw
	}
	return decodeRoot(root)
}

var partitions = []string{"week", "day"}

func decodeRoot(root map[string]json.RawMessage) (Document, error) {
	doc := NewDocument()

	if raw, ok := root["week"]; ok {
		var slots []json.RawMessage
		if isNull(raw) || json.Unmarshal(raw, &slots) != nil {
			return Document{}, apperrors.PartitionError("week", "must be an array of weekday slots")
		}
		if len(slots) > DaysPerWeek {
			return Document{}, apperrors.PartitionError("week", fmt.Sprintf("has %d slots, at most %d allowed", len(slots), DaysPerWeek))
		}
		for i, slot := range slots {
			entries, err := decodeEntries(slot)
			if err != nil {
				return Document{}, apperrors.PartitionError(fmt.Sprintf("week[%d]", i), err.Error())
			}
			doc.Week[i] = entries
		}
	}

	if raw, ok := root["day"]; ok {
		var days map[string]json.RawMessage
		if isNull(raw) || json.Unmarshal(raw, &days) != nil {
			return Document{}, apperrors.PartitionError("day", "must be an object keyed by date")
		}
		for key, list := range days {
			entries, err := decodeEntries(list)
			if err != nil {
				return Document{}, apperrors.PartitionError(fmt.Sprintf("day[%s]", key), err.Error())
			}
			doc.Day[key] = entries
		}
	}
	return doc, nil
}

func decodeEntries(raw json.RawMessage) ([]Entry, error) {
	var items []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &items) != nil {
		return nil, fmt.Errorf("must be an array of entries")
	}
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		var e Entry
		if isNull(item) || json.Unmarshal(item, &e) != nil {
			return nil, fmt.Errorf("entry %d must be an object of strings", i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
