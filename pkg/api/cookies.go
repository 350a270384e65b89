package api

import (
	"net/http"
	"time"
)

// Demo cookie names and values.
const (
	plainCookie  = "name"
	signedCookie = "signed"
	plainValue   = "grocery-shopper"
	signedValue  = "trusted-shopper"
)

// cookieReport mirrors the plain and verified cookies of a request.
type cookieReport struct {
	Cookies       map[string]string `json:"cookies"`
	SignedCookies map[string]string `json:"signedCookies"`
}

// setCookies sets one plain and one signed cookie.
// @Summary Set demo cookies
// @Produce plain
// @Success 200 {string} string "Cookies set"
// @Router /api/cookies/set [get]
func (h *Handler) setCookies(w http.ResponseWriter, r *http.Request) {
	encoded, err := h.cookies.Encode(signedCookie, signedValue)
	if err != nil {
		h.log.Error(r.Context(), "encode cookie", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: plainCookie, Value: plainValue, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: signedCookie, Value: encoded, Path: "/", HttpOnly: true})
	writeText(w, http.StatusOK, "Cookies set")
}

// readCookies reports the cookies sent with the request. Signed cookies
// whose signature does not verify are left out.
// @Summary Read demo cookies
// @Produce json
// @Success 200 {object} cookieReport
// @Router /api/cookies [get]
func (h *Handler) readCookies(w http.ResponseWriter, r *http.Request) {
	rep := cookieReport{Cookies: map[string]string{}, SignedCookies: map[string]string{}}
	for _, c := range r.Cookies() {
		if c.Name != signedCookie {
			rep.Cookies[c.Name] = c.Value
			continue
		}
		var v string
		if err := h.cookies.Decode(signedCookie, c.Value, &v); err != nil {
			h.log.Warn(r.Context(), "rejected signed cookie", "error", err)
			continue
		}
		rep.SignedCookies[c.Name] = v
	}
	writeJSON(w, http.StatusOK, rep)
}

// clearCookies expires both demo cookies.
// @Summary Clear demo cookies
// @Produce plain
// @Success 200 {string} string "Cookies cleared"
// @Router /api/cookies/clear [get]
func (h *Handler) clearCookies(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{plainCookie, signedCookie} {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	}
	writeText(w, http.StatusOK, "Cookies cleared")
}
