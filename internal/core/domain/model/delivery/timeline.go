package delivery

import "time"

// TimelineEntry records one status change.
type TimelineEntry struct {
	status Status
	at     time.Time
	note   string
	actor  string
}

func (e TimelineEntry) Status() Status {
	return e.status
}

func (e TimelineEntry) At() time.Time {
	return e.at
}

func (e TimelineEntry) Note() string {
	return e.note
}

// Actor is the rendered actor ("driver:<id>", "system:dispatcher"), empty when unknown.
func (e TimelineEntry) Actor() string {
	return e.actor
}

// Timeline is the append-only history of a delivery.
type Timeline struct {
	entries []TimelineEntry
}

// Entries returns a copy of the entries in order.
func (t Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t Timeline) Len() int {
	return len(t.entries)
}

// Last returns the most recent entry; ok is false for an empty timeline.
func (t Timeline) Last() (TimelineEntry, bool) {
	if len(t.entries) == 0 {
		return TimelineEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// appended returns a timeline with one more entry. A clock reading earlier
// than the last entry is clamped to it so the history never goes backwards.
func (t Timeline) appended(status Status, at time.Time, note, actor string) Timeline {
	if last, ok := t.Last(); ok && at.Before(last.at) {
		at = last.at
	}

	entries := make([]TimelineEntry, len(t.entries), len(t.entries)+1)
	copy(entries, t.entries)
	entries = append(entries, TimelineEntry{status: status, at: at.UTC(), note: note, actor: actor})
	return Timeline{entries: entries}
}
