// Package session stores the access and refresh tokens in HttpOnly cookies.
package session

import (
	"net/http"
	"time"

	"plaza/config"
	"plaza/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	AccessCookieName  = "plaza_access"
	RefreshCookieName = "plaza_refresh"
)

type Cookies struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCookies(cfg *config.Config) *Cookies {
	cookies := &Cookies{secure: cfg.HTTP.CookieSecure}
	if cfg.Auth != nil {
		cookies.accessTTL = cfg.Auth.AccessTokenTTL
		cookies.refreshTTL = cfg.Auth.RefreshTokenTTL
	}

	return cookies
}

// Set writes both tokens of a fresh session.
func (s *Cookies) Set(c echo.Context, session *usecase.SessionOutput) {
	c.SetCookie(s.cookie(AccessCookieName, session.AccessToken, s.accessTTL))
	c.SetCookie(s.cookie(RefreshCookieName, session.RefreshToken, s.refreshTTL))
}

func (s *Cookies) Clear(c echo.Context) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		cookie := s.cookie(name, "", 0)
		cookie.MaxAge = -1
		c.SetCookie(cookie)
	}
}

func (s *Cookies) AccessToken(c echo.Context) string {
	return read(c, AccessCookieName)
}

func (s *Cookies) RefreshToken(c echo.Context) string {
	return read(c, RefreshCookieName)
}

func read(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (s *Cookies) cookie(name, value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}

	return cookie
}
