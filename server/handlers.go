package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-catalog-server/auth"
	"github.com/jrsteele09/go-catalog-server/token"
	"github.com/jrsteele09/go-catalog-server/users"
)

// Dev/testing admin credentials seeded by POST /seed-admin.
const (
	seedAdminName     = "Admin"
	seedAdminEmail    = "admin@example.com"
	seedAdminPassword = "Admin@1234"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

// loginResponse is the standard envelope plus the token pair at top
// level, the shape existing clients parse.
type loginResponse struct {
	Success      bool     `json:"success"`
	Data         any      `json:"data"`
	Message      *string  `json:"message"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Errors       []string `json:"errors"`
}

// RootHandler is a liveness check.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondSuccess(w, nil, "Server running")
	}
}

func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondErrors(w, http.StatusBadRequest, "name, email, password are required")
			return
		}

		err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password, users.RoleType(req.Role))
		if err != nil {
			var vErr *auth.ValidationError
			switch {
			case errors.As(err, &vErr):
				s.respondErrors(w, http.StatusBadRequest, vErr.Violations...)
			case errors.Is(err, auth.EmailTakenErr):
				s.respondErrors(w, http.StatusBadRequest, "Email already exists!")
			default:
				log.Error().Err(err).Msg("signup error")
				s.respondErrors(w, http.StatusInternalServerError, "Server error")
			}
			return
		}

		s.respondSuccess(w, nil, "User registered successfully!")
	}
}

// SeedAdminHandler creates a well-known admin account for dev/testing.
// Conflict-tolerant: seeding twice reports success both times.
func (s *Server) SeedAdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.auth.Signup(r.Context(), seedAdminName, seedAdminEmail, seedAdminPassword, users.RoleAdmin)
		if err != nil && !errors.Is(err, auth.EmailTakenErr) {
			log.Error().Err(err).Msg("seed admin error")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		s.respondSuccess(w, nil, "Admin user seeded.")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			s.respondErrors(w, http.StatusBadRequest, "email and password are required")
			return
		}

		result, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.UnknownUserErr):
				s.respondErrors(w, http.StatusBadRequest, "User not found!")
			case errors.Is(err, auth.WrongPasswordErr):
				s.respondErrors(w, http.StatusBadRequest, "Invalid password!")
			default:
				log.Error().Err(err).Msg("login error")
				s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		s.respond(w, http.StatusOK, loginResponse{
			Success:      true,
			Data:         result.User,
			Message:      optional("Access and refresh tokens generated"),
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})
	}
}

// RefreshHandler exchanges a registered refresh token for a new access
// token.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		newAccess, err := s.auth.Refresh(r.Context(), req.Token)
		if err != nil {
			switch {
			case errors.Is(err, auth.MissingTokenErr):
				s.respondErrors(w, http.StatusUnauthorized, "Missing refresh token")
			case errors.Is(err, auth.UnrecognizedTokenErr):
				s.respondErrors(w, http.StatusForbidden, "Refresh token not recognized")
			case token.IsInvalidOrExpired(err):
				s.respondErrors(w, http.StatusForbidden, "Invalid or expired refresh token")
			case errors.Is(err, auth.UserNotFoundErr):
				s.respondErrors(w, http.StatusNotFound, "User not found")
			default:
				log.Error().Err(err).Msg("refresh error")
				s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		s.respondSuccess(w, map[string]string{"accessToken": newAccess}, "New access token generated")
	}
}

// LogoutHandler removes the refresh token from the registry. Always
// replies 204, even for unknown or absent tokens.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		s.auth.Logout(r.Context(), req.Token)
		w.WriteHeader(http.StatusNoContent)
	}
}

// MeHandler returns the authenticated user's current record.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			s.respondErrors(w, http.StatusUnauthorized, "Access token required")
			return
		}

		user, err := s.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, users.NotFoundErr) {
				s.respondErrors(w, http.StatusNotFound, "User not found")
				return
			}
			log.Error().Err(err).Msg("me lookup error")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		s.respondSuccess(w, user.Summary(), "User info retrieved successfully")
	}
}

// UsersHandler lists all users (id, name, email only).
func (s *Server) UsersHandler() http.HandlerFunc {
	type userRow struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.users.List(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("users list error")
			s.respondErrors(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		rows := make([]userRow, 0, len(list))
		for _, u := range list {
			rows = append(rows, userRow{ID: u.ID, Name: u.Name, Email: u.Email})
		}

		s.respondSuccess(w, rows, "All users retrieved successfully.")
	}
}
