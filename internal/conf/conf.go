package conf

import "time"

// Bootstrap is the root of the service configuration file.
type Bootstrap struct {
	Server   *Server   `json:"server"`
	Data     *Data     `json:"data"`
	Tracking *Tracking `json:"tracking"`
}

// Server holds transport settings.
type Server struct {
	Http *Server_HTTP `json:"http"`
}

// Server_HTTP configures the kratos HTTP server.
type Server_HTTP struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	// Timeout is a Go duration string, eg: "1s".
	Timeout string `json:"timeout"`
}

// TimeoutDuration parses Timeout. An empty or malformed value yields zero,
// which leaves the kratos default in place.
func (s *Server_HTTP) TimeoutDuration() time.Duration {
	if s == nil || s.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Data holds the storage backends tracked records are written to.
// Both are optional; an empty source disables that backend.
type Data struct {
	Database *Data_Database `json:"database"`
	Redis    *Data_Redis    `json:"redis"`
}

// Data_Database configures the SQL record store.
type Data_Database struct {
	// Driver is "sqlite3" or "postgres".
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Data_Redis configures the Redis record stream.
type Data_Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	Db       int    `json:"db"`
	// Stream is the stream key records are appended to.
	Stream string `json:"stream"`
}

// Tracking configures link classification for the tracked page.
type Tracking struct {
	// Host is the tracked page's host, read once at start-up.
	Host string `json:"host"`
	// BaseHref is the document's declared <base href>, prefixed to
	// download and pageview destinations.
	BaseHref string `json:"base_href"`
	// Variant selects a preset: "downloads", "events" or "events_pageviews".
	Variant string `json:"variant"`

	DownloadExtensions []string `json:"download_extensions"`
	PageviewExtensions []string `json:"pageview_extensions"`
	DefaultCategory    string   `json:"default_category"`
}
