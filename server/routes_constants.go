package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteRegister     = "/api/register"
	RouteLogin        = "/api/login"
	RouteLogout       = "/api/logout"
	RouteRefreshToken = "/api/refresh-token"
	RouteAuthTest     = "/api/auth-test"
)
