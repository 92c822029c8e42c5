package views

import (
	"strconv"
	"strings"

	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
)

// Routes served by the application.
const (
	RouteAll      = "all"
	RouteWork     = "work"
	RouteHome     = "home"
	RoutePersonal = "personal"
	RouteStudy    = "study"
	RouteWeekly   = "weekly"
	RouteLogin    = "login"
)

// RouteInfo holds the menu metadata of a route.
type RouteInfo struct {
	Name     string // Maps to ViewHandler.Name()
	Icon     string
	Label    string
	Category api.Category
}

// Registry holds all registered views and the menu routes.
type Registry struct {
	views  map[string]ViewHandler
	routes []RouteInfo
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views:  make(map[string]ViewHandler),
		routes: []RouteInfo{},
	}
}

// RegisterView adds a view to the registry.
func (r *Registry) RegisterView(view ViewHandler) {
	r.views[view.Name()] = view
}

// RegisterRoute appends a menu entry for an already registered view.
func (r *Registry) RegisterRoute(info RouteInfo) {
	r.routes = append(r.routes, info)
}

// GetView returns a view by name.
func (r *Registry) GetView(name string) (ViewHandler, bool) {
	view, ok := r.views[name]
	return view, ok
}

// Resolve returns the view for name. Category wire values resolve to
// their view; anything unknown resolves to login.
func (r *Registry) Resolve(name string) ViewHandler {
	name = strings.TrimSpace(name)
	if view, ok := r.views[strings.ToLower(name)]; ok {
		return view
	}
	if c := api.ParseCategory(name); c != api.CategoryNone {
		for _, info := range r.routes {
			if info.Category == c {
				return r.views[info.Name]
			}
		}
	}
	return r.views[RouteLogin]
}

// Routes returns the menu routes in order.
func (r *Registry) Routes() []RouteInfo {
	return r.routes
}

// RouteForShortcut maps a 1-based menu position to its route.
func (r *Registry) RouteForShortcut(n int) (string, bool) {
	if n < 1 || n > len(r.routes) {
		return "", false
	}
	return r.routes[n-1].Name, true
}

// MenuItems builds the sidebar entries: every route, then log out.
func (r *Registry) MenuItems() []components.SidebarItem {
	items := make([]components.SidebarItem, 0, len(r.routes)+2)
	for i, info := range r.routes {
		items = append(items, components.SidebarItem{
			Type:     "view",
			ID:       info.Name,
			Name:     info.Label,
			Icon:     info.Icon,
			Shortcut: strconv.Itoa(i + 1),
		})
	}
	items = append(items,
		components.SidebarItem{Type: "separator"},
		components.SidebarItem{Type: "logout", ID: "logout", Name: "Log out", Icon: "⏻", Shortcut: "O"},
	)
	return items
}

// DefaultRegistry creates a registry with all standard views and routes.
func DefaultRegistry(s *state.State) *Registry {
	r := NewRegistry()

	r.RegisterView(NewAllView(s))
	r.RegisterView(NewLoginView(s))
	r.RegisterRoute(RouteInfo{Name: RouteAll, Icon: "☰", Label: "All"})

	categories := []struct {
		route    string
		icon     string
		category api.Category
	}{
		{RouteWork, "💼", api.CategoryWork},
		{RouteHome, "🏠", api.CategoryHome},
		{RoutePersonal, "👤", api.CategoryPersonal},
		{RouteStudy, "📚", api.CategoryStudy},
		{RouteWeekly, "🗓️", api.CategoryWeekly},
	}
	for _, c := range categories {
		r.RegisterView(NewCategoryView(s, c.route, c.category))
		r.RegisterRoute(RouteInfo{
			Name:     c.route,
			Icon:     c.icon,
			Label:    c.category.Label(),
			Category: c.category,
		})
	}

	return r
}
