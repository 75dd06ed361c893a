// Package flash carries one-shot messages across a redirect in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"plaza/config"

	"github.com/labstack/echo/v4"
)

const (
	cookieName = "plaza_flash"
	pendingKey = "flash.pending"
	maxAge     = 60
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"l"`
	Text  string `json:"t"`
}

// Store reads and writes the flash cookie.
type Store struct {
	secure bool
}

func NewStore(cfg *config.Config) *Store {
	return &Store{secure: cfg.HTTP.CookieSecure}
}

// Add queues a message for the next rendered page.
func (s *Store) Add(c echo.Context, level Level, text string) {
	pending, _ := c.Get(pendingKey).([]Message)
	pending = append(pending, Message{Level: level, Text: text})
	c.Set(pendingKey, pending)

	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}

	c.SetCookie(s.cookie(base64.RawURLEncoding.EncodeToString(raw), maxAge))
}

// Pop returns the queued messages and clears the cookie.
// Messages added earlier in the same request are returned too.
func (s *Store) Pop(c echo.Context) []Message {
	var messages []Message

	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		if raw, decodeErr := base64.RawURLEncoding.DecodeString(cookie.Value); decodeErr == nil {
			_ = json.Unmarshal(raw, &messages)
		}
		c.SetCookie(s.cookie("", -1))
	}

	if pending, ok := c.Get(pendingKey).([]Message); ok && len(pending) > 0 {
		messages = append(messages, pending...)
		c.Set(pendingKey, nil)
		c.SetCookie(s.cookie("", -1))
	}

	return messages
}

func (s *Store) cookie(value string, age int) *http.Cookie {
	return &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   age,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
