package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-catalog-server/audit"
	"github.com/jrsteele09/go-catalog-server/auth"
	"github.com/jrsteele09/go-catalog-server/internal/config"
	"github.com/jrsteele09/go-catalog-server/products"
	"github.com/jrsteele09/go-catalog-server/users"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	users    users.Repo
	products products.Repo
	audit    audit.Sink
}

// Deps are the collaborators the server operates over. Everything is an
// interface (or a service built from interfaces) so tests can substitute
// fakes.
type Deps struct {
	Auth     *auth.Service
	Users    users.Repo
	Products products.Repo
	Audit    audit.Sink
}

func New(cfg config.Config, deps Deps) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		auth:     deps.Auth,
		users:    deps.Users,
		products: deps.Products,
		audit:    deps.Audit,
	}
	s.env = cfg.GetEnv()
	if s.audit == nil {
		s.audit = audit.NopSink{}
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
