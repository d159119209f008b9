package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-site/internal/pkg/jwtutil"
)

const (
	FlashCookieName = "flash"
	ContextFlashKey = "flash"

	flashTTL = 5 * time.Minute
)

// Flash is a one-shot message carried from a POST to the next page render.
type Flash struct {
	Category string
	Message  string
}

// LoadFlash moves a valid flash cookie into the request context and clears
// the cookie. Tampered or expired cookies are dropped silently.
func LoadFlash(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(FlashCookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		clearFlashCookie(c)
		claims, err := jwtutil.ParseFlashToken(secret, raw)
		if err == nil {
			c.Set(ContextFlashKey, Flash{Category: claims.Category, Message: claims.Message})
		}
		c.Next()
	}
}

// SetFlash stores a signed flash cookie on the response.
func SetFlash(c *gin.Context, secret, category, message string) error {
	token, err := jwtutil.GenerateFlashToken(secret, flashTTL, category, message)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, token, int(flashTTL.Seconds()), "/", "", false, true)
	return nil
}

// FlashFromContext returns the flash loaded by LoadFlash, if any.
func FlashFromContext(c *gin.Context) (Flash, bool) {
	v, ok := c.Get(ContextFlashKey)
	if !ok {
		return Flash{}, false
	}
	f, ok := v.(Flash)
	return f, ok
}

func clearFlashCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookieName, "", -1, "/", "", false, true)
}
