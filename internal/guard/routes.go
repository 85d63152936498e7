package guard

// Access is the level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	AdminOnly
)

// Route is one navigable view.
type Route struct {
	Path   string
	View   string
	Access Access
}

// RequiresAdmin reports whether the route is admin-only.
func (r Route) RequiresAdmin() bool {
	return r.Access == AdminOnly
}

// Routes is the application's view table.
var Routes = []Route{
	{Path: "/", View: "home", Access: Public},
	{Path: "/login", View: "login", Access: Public},
	{Path: "/signup", View: "signup", Access: Public},
	{Path: "/unauthorized", View: "unauthorized", Access: Public},
	{Path: "/forum", View: "forum", Access: Public},
	{Path: "/statistics", View: "statistics", Access: Public},

	{Path: "/dashboard", View: "dashboard", Access: Authenticated},
	{Path: "/profile", View: "profile", Access: Authenticated},
	{Path: "/books", View: "book_management", Access: Authenticated},
	{Path: "/reviews", View: "review_management", Access: Authenticated},
	{Path: "/authors", View: "authors_management", Access: Authenticated},
	{Path: "/complaints", View: "complaints_management", Access: Authenticated},
	{Path: "/support", View: "complaints_management", Access: Authenticated},
	{Path: "/admin/reports", View: "complaints_management", Access: Authenticated},
	{Path: "/admin/stats", View: "statistics", Access: Authenticated},

	{Path: "/admin/users", View: "manage_users", Access: AdminOnly},
	{Path: "/admin/books", View: "book_management", Access: AdminOnly},
	{Path: "/admin/reviews", View: "review_management", Access: AdminOnly},
}

// Lookup returns the route registered for path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
