package server

const (
	RouteRoot      = "/{$}"
	RouteSignup    = "/signup"
	RouteSeedAdmin = "/seed-admin"
	RouteLogin     = "/login"
	RouteToken     = "/token"
	RouteLogout    = "/logout"

	RouteMe    = "/me"
	RouteUsers = "/users"

	RouteAddProduct     = "/add-product"
	RouteProductsSearch = "/products/get-all"
	RouteProductsAll    = "/products/all"
	RouteProductByID    = "/products/{id}"
)
