package domain

import "time"

// RecordKind selects which sink call a record is delivered through.
type RecordKind string

const (
	KindEvent    RecordKind = "event"
	KindPageview RecordKind = "pageview"
)

// EventRecord is built once per tracked click and handed straight to the sink.
//
// For pageview records Category carries the virtual page path
// ("/<EXT>/<file name>") and Action and Label are empty.
type EventRecord struct {
	Kind        RecordKind `json:"kind"`
	Category    string     `json:"category"`
	Action      string     `json:"action,omitempty"`
	Label       string     `json:"label,omitempty"`
	Destination string     `json:"destination"`
}

// IsPageview reports whether the record goes to the pageview sink call.
func (r EventRecord) IsPageview() bool {
	return r.Kind == KindPageview
}

// TrackedRecord is the stored form of an emitted record.
type TrackedRecord struct {
	ID         string
	Kind       RecordKind
	Category   string
	Action     string
	Label      string
	OccurredAt time.Time
}

// CounterKey is the bucket a record is counted under: the action for
// events, "Pageview" for virtual pageviews.
func (r TrackedRecord) CounterKey() string {
	if r.Kind == KindPageview {
		return "Pageview"
	}
	return r.Action
}
