package domain

// LinkAttributes is a snapshot of an anchor's attributes taken at click time.
// Missing attributes are empty strings.
type LinkAttributes struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Target string `json:"target"`
}

// Category is the outcome of classifying a clicked link.
type Category int

const (
	// Internal links are not tracked.
	Internal Category = iota
	External
	Download
	Pageview
	Email
	Phone
)

var categoryNames = map[Category]string{
	Internal: "internal",
	External: "external",
	Download: "download",
	Pageview: "pageview",
	Email:    "email",
	Phone:    "phone",
}

// String returns the lower-case category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Tracked reports whether clicks in this category produce a record.
func (c Category) Tracked() bool {
	return c != Internal
}

// FileRef names the file a download or pageview link points to.
type FileRef struct {
	Name string
	// Extension is upper-cased, eg: "PDF".
	Extension string
}
