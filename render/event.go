package render

import (
	"fmt"
	"sort"
)

// EventKind discriminates scheduled test events.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventSetParam
	EventGate
)

// String returns the canonical lowercase name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNoteOn:
		return "note-on"
	case EventNoteOff:
		return "note-off"
	case EventSetParam:
		return "set-param"
	case EventGate:
		return "gate"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a timestamped action applied to the unit under test. Application
// is quantized to block boundaries: an event fires in the first block whose
// start time is greater than or equal to its timestamp.
type Event struct {
	Time float64 // seconds from render start
	Kind EventKind

	Note     int
	Velocity int
	Param    string
	Value    float64
	On       bool
}

// NoteOn creates a note-on event.
func NoteOn(time float64, note, velocity int) Event {
	return Event{Time: time, Kind: EventNoteOn, Note: note, Velocity: velocity}
}

// NoteOff creates a note-off event.
func NoteOff(time float64, note int) Event {
	return Event{Time: time, Kind: EventNoteOff, Note: note}
}

// SetParam creates a parameter-change event.
func SetParam(time float64, name string, value float64) Event {
	return Event{Time: time, Kind: EventSetParam, Param: name, Value: value}
}

// Gate creates a gate on/off event.
func Gate(time float64, on bool) Event {
	return Event{Time: time, Kind: EventGate, On: on}
}

// schedule consumes events in non-decreasing timestamp order. The input
// slice is copied and stably sorted so equal-time events keep their
// caller-supplied order.
type schedule struct {
	events []Event
	cursor int
}

func newSchedule(events []Event) *schedule {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &schedule{events: sorted}
}

// popDue returns all not-yet-fired events with timestamp <= blockStart.
func (s *schedule) popDue(blockStart float64) []Event {
	start := s.cursor
	for s.cursor < len(s.events) && s.events[s.cursor].Time <= blockStart {
		s.cursor++
	}
	return s.events[start:s.cursor]
}

// remaining reports how many events have not fired yet.
func (s *schedule) remaining() int {
	return len(s.events) - s.cursor
}
