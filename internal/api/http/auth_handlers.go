package httpapi

import (
	"errors"
	"net"
	"net/http"
	"time"

	appAuth "github.com/campus-hub/campus-hub/internal/application/auth"
	domainUser "github.com/campus-hub/campus-hub/internal/domain/user"
	"github.com/campus-hub/campus-hub/internal/infrastructure/ratelimit"
)

type registerRequest struct {
	Email    string                  `json:"email"`
	Password string                  `json:"password"`
	Role     string                  `json:"role"`
	Student  *appAuth.StudentProfile `json:"student,omitempty"`
	Teacher  *appAuth.TeacherProfile `json:"teacher,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User      interface{} `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expiresAt,omitempty"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := s.authLimiter.Allow(r.Context(), "register:"+clientIP(r)); errors.Is(err, ratelimit.ErrRateLimited) {
		respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many attempts, try again later")
		return
	}
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	res, err := s.authSvc.Register(r.Context(), appAuth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domainUser.Role(req.Role),
		Student:  req.Student,
		Teacher:  req.Teacher,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, appAuth.ErrEmailTaken) {
			status = http.StatusConflict
		}
		respondError(w, status, "REGISTRATION_FAILED", err.Error())
		return
	}

	// A pending teacher gets no usable token until an admin approves.
	if res.User.Status == domainUser.StatusPending {
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"user":    res.User,
			"message": "account created, awaiting admin approval",
		})
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{User: res.User, Token: res.Token})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := s.authLimiter.Allow(r.Context(), "login:"+clientIP(r)); errors.Is(err, ratelimit.ErrRateLimited) {
		respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many attempts, try again later")
		return
	}
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	res, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, appAuth.ErrNotApproved):
			respondError(w, http.StatusForbidden, "PENDING_APPROVAL", err.Error())
		default:
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		}
		return
	}
	respondJSON(w, http.StatusOK, authResponse{
		User:      res.User,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	if u == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth")
		return
	}
	account, err := s.userRepo.GetByID(r.Context(), u.UserID)
	if err != nil || account == nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load account")
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
