package screen

// Route names a drawer destination.
type Route string

const (
	RouteMain     Route = "Main"
	RouteTaiKhoan Route = "TaiKhoan"
)

// Navigator is the host's drawer navigation.
type Navigator interface {
	ToggleMenu()
	CurrentRoute() Route
}

// Drawer is a Navigator for server-rendered pages, where the open/closed
// state travels in the request.
type Drawer struct {
	route Route
	open  bool
}

func NewDrawer(route Route, open bool) *Drawer {
	if route == "" {
		route = RouteMain
	}
	return &Drawer{route: route, open: open}
}

func (d *Drawer) ToggleMenu() {
	d.open = !d.open
}

func (d *Drawer) CurrentRoute() Route {
	return d.route
}

func (d *Drawer) Open() bool {
	return d.open
}

// Navigate switches route and closes the menu.
func (d *Drawer) Navigate(r Route) {
	d.route = r
	d.open = false
}

// Path maps a route to its URL path.
func (r Route) Path() string {
	if r == RouteTaiKhoan {
		return "/tai-khoan"
	}
	return "/"
}

// Title is the drawer entry caption.
func (r Route) Title() string {
	if r == RouteTaiKhoan {
		return "Tài Khoản"
	}
	return "Tổng quan"
}

// Routes lists the drawer entries in order.
func Routes() []Route {
	return []Route{RouteMain, RouteTaiKhoan}
}
