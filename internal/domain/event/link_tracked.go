package event

const (
	LinkEventTrackedName = "link.event_tracked"
	PageviewTrackedName  = "link.pageview_tracked"
)

// LinkEventTracked is raised for every emitted event-style record.
type LinkEventTracked struct {
	Base
	Category string `json:"category"`
	Action   string `json:"action"`
	Label    string `json:"label"`
}

// NewLinkEventTracked creates a LinkEventTracked event.
func NewLinkEventTracked(category, action, label string) LinkEventTracked {
	return LinkEventTracked{
		Base:     newBase(label),
		Category: category,
		Action:   action,
		Label:    label,
	}
}

func (e LinkEventTracked) EventName() string {
	return LinkEventTrackedName
}

// PageviewTracked is raised for every emitted virtual pageview.
type PageviewTracked struct {
	Base
	Path string `json:"path"`
}

// NewPageviewTracked creates a PageviewTracked event.
func NewPageviewTracked(path string) PageviewTracked {
	return PageviewTracked{
		Base: newBase(path),
		Path: path,
	}
}

func (e PageviewTracked) EventName() string {
	return PageviewTrackedName
}
