package http

import (
	"net/http"
	"time"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// CookieManager owns the access/refresh cookie attributes. Secure and
// SameSite=Strict apply in production; development keeps Lax so the SPA dev
// server on another port can authenticate.
type CookieManager struct {
	secure     bool
	sameSite   http.SameSite
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookieManager(production bool, accessTTL, refreshTTL time.Duration) *CookieManager {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteStrictMode
	}
	return &CookieManager{
		secure:     production,
		sameSite:   sameSite,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (c *CookieManager) SetAccess(w http.ResponseWriter, token string) {
	c.set(w, accessCookieName, token, c.accessTTL)
}

func (c *CookieManager) SetRefresh(w http.ResponseWriter, token string) {
	c.set(w, refreshCookieName, token, c.refreshTTL)
}

func (c *CookieManager) Clear(w http.ResponseWriter) {
	c.expire(w, accessCookieName)
	c.expire(w, refreshCookieName)
}

func (c *CookieManager) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (c *CookieManager) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
