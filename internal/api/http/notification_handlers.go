package httpapi

import (
	"net/http"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	limit, _ := parseLimitOffset(r, 50, 200)
	notifications, err := s.notificationSvc.ListForUser(r.Context(), u.UserID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	count, err := s.notificationSvc.UnreadCount(r.Context(), u.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"count": count})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	u := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "notificationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid notification id")
		return
	}
	if err := s.notificationSvc.MarkRead(r.Context(), id, u.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "OK"})
}
