package routes

import (
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/log"
	"github.com/formwave/formwave/routes/middlewares"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Signup(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := signupRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		switch {
		case req.Username == "":
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "signup.username", "Username is required")
			return
		case req.Email == "":
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "signup.email", "Email is required")
			return
		case len(req.Password) < 8:
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "signup.password", "Password must be at least 8 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.LogInternalError(w, "signup.hash", err)
			return
		}

		var userID int64
		err = app.QueryRowContext(r.Context(), `
			INSERT INTO profile (username, email, password_hash) VALUES (?, ?, ?)
			RETURNING id`,
			req.Username,
			req.Email,
			hash,
		).Scan(&userID)
		if err != nil {
			if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
				httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "signup.duplicate", "Username already taken")
				return
			}
			httpx.LogInternalError(w, "db.insert_profile", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":       userID,
			"username": req.Username,
		})
	}
}

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}
		r.Body = io.NopCloser(strings.NewReader(body.Encode()))
		r.Header.Set("content-type", "application/x-www-form-urlencoded")
		r.Header.Set("content-length", strconv.Itoa(len(body.Encode())))
		app.UserCredentials(w, r)
	}
}

func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("authorization")
		match := regexp.MustCompile(`(?i)^refresh\s+(.*)`).FindStringSubmatch(auth)
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}
		token := match[1]

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		}

		req, err := http.NewRequest("POST", "/", strings.NewReader(body.Encode()))
		if err != nil {
			httpx.LogStatus(w, http.StatusInternalServerError, log.DebugLevel, "refresh.new_request")
			return
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("content-length", strconv.Itoa(len(body.Encode())))

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		resp.Flush(w)
	}
}

// Session reports the authenticated caller's identity.
func Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFrom(r.Context())
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "session.identity")
			return
		}

		render.JSON(w, r, map[string]any{
			"userId":   identity.UserID,
			"username": identity.Username,
		})
	}
}
