// Package route defines the site's four client-visible paths.
package route

// Route identifies one view.
type Route int

const (
	Home Route = iota
	Projects
	About
	Contact
)

var (
	paths  = [...]string{"/", "/projects", "/about", "/contact"}
	labels = [...]string{"Home", "Projects", "About", "Contact"}
	titles = [...]string{"home", "projects", "about", "contact"}
)

// All returns the routes in navigation order.
func All() []Route {
	return []Route{Home, Projects, About, Contact}
}

// Path is the URL path the route is served on.
func (r Route) Path() string { return paths[r] }

// Label is the navigation link text.
func (r Route) Label() string { return labels[r] }

// String returns a lowercase name used for template and metric labels.
func (r Route) String() string { return titles[r] }

// Parse maps a path to its route. Unknown paths report false.
func Parse(path string) (Route, bool) {
	for _, r := range All() {
		if r.Path() == path {
			return r, true
		}
	}
	return 0, false
}

// Link is one entry of the navigation shell.
type Link struct {
	Label   string
	Path    string
	Current bool
}

// Nav builds the navigation links with current marked.
func Nav(current Route) []Link {
	links := make([]Link, 0, len(paths))
	for _, r := range All() {
		links = append(links, Link{Label: r.Label(), Path: r.Path(), Current: r == current})
	}
	return links
}
