package model

// Window is a visible top-level window as seen by the OS.
// Handle is the opaque native handle (HWND on Windows) and is only
// meaningful within the process lifetime.
type Window struct {
	Handle     uintptr `yaml:"handle"               json:"handle"`
	Title      string  `yaml:"title"                json:"title"`
	PID        int     `yaml:"pid"                  json:"pid"`
	Bounds     [4]int  `yaml:"bounds,omitempty"     json:"bounds,omitempty"`
	Foreground bool    `yaml:"foreground,omitempty" json:"foreground,omitempty"`
}

// PageTarget is an attachable page inside the remote browser.
type PageTarget struct {
	ID     string `yaml:"id"               json:"id"`
	Title  string `yaml:"title"            json:"title"`
	URL    string `yaml:"url"              json:"url"`
	Active bool   `yaml:"active,omitempty" json:"active,omitempty"`
}
