package consts

// Dashboard routes. Screens navigate to these after a successful submit.
const (
	RouteHome       = "/"
	RouteLogin      = "/auth/login"
	RouteRegister   = "/auth/register"
	RouteDashboard  = "/dashboard"
	RouteProfile    = "/dashboard/profile"
	RouteNews       = "/dashboard/news"
	RouteNewsCreate = "/dashboard/news/create"
)
