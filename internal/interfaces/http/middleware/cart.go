package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
)

// Cart cookie settings
const (
	CartIDKey      = "cart_id"
	CartCookieName = "cart_id"

	// Carts are long-lived so a shopper returning weeks later still
	// finds their items
	cartCookieMaxAge = 180 * 24 * 60 * 60 // 180 days in seconds
)

// CartID assigns every request a cart identifier. An existing cart_id
// cookie is reused when it parses as a UUID, otherwise a fresh one is
// minted and set on the response. Guests and logged-in users both carry
// the cookie, so a guest cart survives logging in.
func CartID(cfg config.CookieConfig) gin.HandlerFunc {
	sameSite := parseSameSite(cfg.SameSite)

	return func(c *gin.Context) {
		cartID := ""

		if cookie, err := c.Cookie(CartCookieName); err == nil {
			if id, parseErr := uuid.Parse(cookie); parseErr == nil {
				cartID = id.String()
			}
		}

		if cartID == "" {
			cartID = uuid.New().String()
			c.SetSameSite(sameSite)
			c.SetCookie(CartCookieName, cartID, cartCookieMaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
		}

		c.Set(CartIDKey, cartID)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithCartID(ctx, log, cartID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCartID retrieves the cart identifier assigned by the CartID middleware
func GetCartID(c *gin.Context) string {
	if cartID, exists := c.Get(CartIDKey); exists {
		if id, ok := cartID.(string); ok {
			return id
		}
	}
	return ""
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
