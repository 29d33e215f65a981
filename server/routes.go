package server

import "net/http"

func (s *Server) initRoutes() {
	// Public routes
	s.RegisterRouteFunc("GET "+RouteRoot, ChainMiddleware(s.RootHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSignup, ChainMiddleware(s.SignupHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteSeedAdmin, ChainMiddleware(s.SeedAdminHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteToken, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Authenticated routes
	s.RegisterRouteFunc("GET "+RouteMe, ChainMiddleware(s.MeHandler(), s.authenticatedAPI()...))
	s.RegisterRouteFunc("GET "+RouteUsers, ChainMiddleware(s.UsersHandler(), s.authenticatedAPI()...))
	s.RegisterRouteFunc("POST "+RouteAddProduct, ChainMiddleware(s.AddProductHandler(), s.authenticatedAPI()...))
	s.RegisterRouteFunc("POST "+RouteProductsSearch, ChainMiddleware(s.ProductsSearchHandler(), s.authenticatedAPI()...))
	s.RegisterRouteFunc("GET "+RouteProductsAll, ChainMiddleware(s.ProductsAllHandler(), s.authenticatedAPI()...))

	// Admin-only routes
	s.RegisterRouteFunc("PUT "+RouteProductByID, ChainMiddleware(s.UpdateProductHandler(), s.adminAPI()...))
	s.RegisterRouteFunc("DELETE "+RouteProductByID, ChainMiddleware(s.DeleteProductHandler(), s.adminAPI()...))
}

func (s *Server) authenticatedAPI() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.APIMiddleware(), s.RequireAuth())
}

func (s *Server) adminAPI() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.authenticatedAPI(), s.RequireAdmin())
}
