package handler

import (
	"net/http"

	"github.com/user/seo-report/internal/view"
)

// SessionCookie carries the id of the browser's report view.
const SessionCookie = "seo_session"

const sessionMaxAge = 7 * 24 * 60 * 60

// session returns the report view of the requesting browser, creating one
// when the cookie is missing or invalid. The cookie is (re)issued on w.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *view.ReportView {
	id, v := h.sessions.Get(sessionID(r))
	http.SetCookie(w, sessionCookie(r, id))
	return v
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func sessionCookie(r *http.Request, id string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

func secureRequest(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
