package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/and161185/nutrilog/internal/errs"
	"github.com/and161185/nutrilog/internal/limiter"
	"github.com/and161185/nutrilog/internal/model"
	"github.com/and161185/nutrilog/internal/service"
	"go.uber.org/zap"
)

const (
	msgRegisterConflict = "Registration failed. Please try a different email."
	msgBadCredentials   = "Invalid email or password."
	msgRefreshRequired  = "Refresh token required."
	msgRefreshInvalid   = "Invalid or expired refresh token."
	msgLoggedOut        = "Logged out successfully."
	msgUserNotFound     = "User not found."

	maxRefreshLen = 256
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest keeps the token untyped so a non-string value is reported as missing.
type refreshRequest struct {
	RefreshToken any `json:"refreshToken"`
}

func (r refreshRequest) secret() (string, bool) {
	s, ok := r.RefreshToken.(string)
	if !ok || s == "" || len(s) > maxRefreshLen {
		return "", false
	}
	return s, true
}

type sessionResponse struct {
	User         model.PublicUser `json:"user"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
}

func toSession(s model.Session) sessionResponse {
	return sessionResponse{User: s.User.Public(), AccessToken: s.Tokens.AccessToken, RefreshToken: s.Tokens.RefreshToken}
}

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := a.Auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, msgRegisterConflict)
			return
		}
		a.writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, toSession(sess))
}

func (a *api) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx := r.Context()
	emailHash := limiter.HashKey(service.NormalizeEmail(req.Email))
	ipHash := limiter.HashKey(clientIP(r))

	if a.Lockout != nil {
		ok, wait, err := a.Lockout.Allow(ctx, emailHash, ipHash)
		if err != nil {
			a.log.Warn("login lockout check failed", zap.Error(err))
		} else if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
	}

	sess, err := a.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			if a.Lockout != nil {
				if blocked, _, lerr := a.Lockout.Failure(ctx, emailHash, ipHash); lerr != nil {
					a.log.Warn("login lockout failure not recorded", zap.Error(lerr))
				} else if blocked {
					a.log.Info("login blocked after repeated failures", zap.String("ip_hash", ipHash))
				}
			}
			writeError(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		a.writeServiceError(w, r, err, msgNotFound)
		return
	}
	if a.Lockout != nil {
		if err := a.Lockout.Success(ctx, emailHash, ipHash); err != nil {
			a.log.Warn("login lockout reset failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, toSession(sess))
}

func (a *api) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	secret, ok := req.secret()
	if !ok {
		writeError(w, http.StatusBadRequest, msgRefreshRequired)
		return
	}
	sess, err := a.Auth.Refresh(r.Context(), secret)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, msgRefreshInvalid)
			return
		}
		a.writeServiceError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toSession(sess))
}

// logout always succeeds for an authenticated caller; ledger failures are only logged.
func (a *api) logout(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	// The body is optional; an unreadable one just means no ledger row is targeted.
	var req refreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	secret, _ := req.secret()
	if err := a.Auth.Logout(r.Context(), uid, secret); err != nil {
		a.log.Warn("logout cleanup failed", zap.String("user_id", uid.String()), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgLoggedOut})
}

func (a *api) me(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromCtx(r.Context())
	u, err := a.Auth.Me(r.Context(), uid)
	if err != nil {
		a.writeServiceError(w, r, err, msgUserNotFound)
		return
	}
	pu := u.Public()
	pu.CreatedAt = &u.CreatedAt
	writeJSON(w, http.StatusOK, map[string]model.PublicUser{"user": pu})
}
