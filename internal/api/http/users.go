package http

import (
	"net/http"

	authmw "github.com/mind-engage/lessonhub/internal/auth/middleware"
	"github.com/mind-engage/lessonhub/internal/user"
)

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// POST /api/users  { "email", "password", "permission" }
func RegisterHandler(users *user.Service, authSvc *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req user.Registration
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		u, err := users.Register(r.Context(), req)
		if err != nil {
			respondError(w, r, err)
			return
		}
		issueToken(w, r, authSvc, u, http.StatusCreated)
	}
}

// POST /api/auth  { "email", "password" }
func LoginHandler(users *user.Service, authSvc *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req user.Credentials
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		u, err := users.Authenticate(r.Context(), req)
		if err != nil {
			respondError(w, r, err)
			return
		}
		issueToken(w, r, authSvc, u, http.StatusOK)
	}
}

func issueToken(w http.ResponseWriter, r *http.Request, authSvc *authmw.AuthService, u user.User, status int) {
	tok, err := authSvc.IssueJWT(u.ID, u.Permission)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, status, tokenResponse{AccessToken: tok})
}

// GET /api/auth
func CurrentUserHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.Get(r.Context(), subject(r))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

// GET /api/users?permission=student
func ListUsersHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := users.List(r.Context(), r.URL.Query().Get("permission"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, out)
	}
}

// POST /api/users/change-password  { "prevPassword", "newPassword", "confirmPassword" }
func ChangePasswordHandler(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req user.PasswordChange
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		if err := users.ChangePassword(r.Context(), subject(r), req); err != nil {
			respondError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
