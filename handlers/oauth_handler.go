package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"guestboard/config"
	"guestboard/middleware"
	"guestboard/models"
	"guestboard/services"
)

// RegisterOAuthRoutes registers the social connection flows. Both platforms
// follow the same shape: a start route that sets a CSRF state cookie and
// redirects to the provider, and a callback that consumes the state, exchanges
// the code, and stores the connection.
func RegisterOAuthRoutes(app *fiber.App, cfg *config.Config) {
	auth := app.Group("/auth", middleware.RequireAuth)

	auth.Get("/instagram/start", func(c *fiber.Ctx) error {
		if cfg.MetaAppID == "" || cfg.MetaRedirectURI == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Instagram connection is not configured",
			})
		}

		state, err := services.GenerateOAuthState()
		if err != nil {
			slog.Error("Failed to generate oauth state", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to start Instagram connection",
			})
		}

		setStateCookie(c, models.PlatformInstagram, state)
		return c.Redirect(services.BuildInstagramAuthURL(cfg.MetaAppID, cfg.MetaRedirectURI, state))
	})

	auth.Get("/instagram/callback", func(c *fiber.Ctx) error {
		if err := consumeStateCookie(c, models.PlatformInstagram); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid OAuth state",
			})
		}

		code := c.Query("code")
		if code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing authorization code",
			})
		}

		shortToken, err := services.ExchangeFacebookCode(c.Context(), cfg.MetaAppID, cfg.MetaAppSecret, cfg.MetaRedirectURI, code)
		if err != nil {
			slog.Error("Facebook code exchange failed", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Instagram token exchange failed",
			})
		}

		longToken, err := services.ExchangeFacebookLongLivedToken(c.Context(), cfg.MetaAppID, cfg.MetaAppSecret, shortToken.AccessToken)
		if err != nil {
			slog.Error("Facebook long-lived token exchange failed", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Instagram token exchange failed",
			})
		}

		profile, err := services.FetchFacebookUserProfile(c.Context(), longToken.AccessToken)
		if err != nil {
			slog.Error("Facebook profile fetch failed", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to fetch Instagram profile",
			})
		}

		conn := &models.SocialConnection{
			UserID:      middleware.UserID(c),
			Platform:    models.PlatformInstagram,
			PlatformID:  profile.ID,
			Username:    profile.Name,
			AccessToken: longToken.AccessToken,
		}
		if longToken.ExpiresIn > 0 {
			expiresAt := time.Now().Add(time.Duration(longToken.ExpiresIn) * time.Second)
			conn.ExpiresAt = &expiresAt
		}

		if err := services.SaveConnection(c.Context(), conn); err != nil {
			slog.Error("Failed to save instagram connection", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save connection",
			})
		}

		return c.JSON(fiber.Map{
			"message":  "Instagram connected",
			"platform": models.PlatformInstagram,
			"username": profile.Name,
		})
	})

	auth.Get("/tiktok/start", func(c *fiber.Ctx) error {
		if cfg.TikTokClientKey == "" || cfg.TikTokRedirectURI == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "TikTok connection is not configured",
			})
		}

		state, err := services.GenerateOAuthState()
		if err != nil {
			slog.Error("Failed to generate oauth state", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to start TikTok connection",
			})
		}

		setStateCookie(c, models.PlatformTikTok, state)
		return c.Redirect(services.BuildTikTokAuthURL(cfg.TikTokClientKey, cfg.TikTokRedirectURI, state))
	})

	auth.Get("/tiktok/callback", func(c *fiber.Ctx) error {
		if err := consumeStateCookie(c, models.PlatformTikTok); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid OAuth state",
			})
		}

		code := c.Query("code")
		if code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing authorization code",
			})
		}

		token, err := services.ExchangeTikTokCode(c.Context(), cfg.TikTokClientKey, cfg.TikTokClientSecret, cfg.TikTokRedirectURI, code)
		if err != nil {
			slog.Error("TikTok code exchange failed", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "TikTok token exchange failed",
			})
		}

		userInfo, err := services.FetchTikTokUserInfo(c.Context(), token.AccessToken)
		if err != nil {
			slog.Error("TikTok user info fetch failed", "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to fetch TikTok profile",
			})
		}

		expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
		conn := &models.SocialConnection{
			UserID:       middleware.UserID(c),
			Platform:     models.PlatformTikTok,
			PlatformID:   token.OpenID,
			Username:     userInfo.DisplayName,
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			ExpiresAt:    &expiresAt,
		}

		if err := services.SaveConnection(c.Context(), conn); err != nil {
			slog.Error("Failed to save tiktok connection", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save connection",
			})
		}

		return c.JSON(fiber.Map{
			"message":  "TikTok connected",
			"platform": models.PlatformTikTok,
			"username": userInfo.DisplayName,
		})
	})
}

func GetConnections(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	connections, err := services.GetConnectionsByUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get connections", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get connections",
		})
	}

	return c.JSON(fiber.Map{
		"connections": connections,
	})
}

func DisconnectPlatform(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	platform := c.Params("platform")

	if platform != models.PlatformInstagram && platform != models.PlatformTikTok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown platform",
		})
	}

	if err := services.DeleteConnection(c.Context(), userID, platform); err != nil {
		slog.Error("Failed to disconnect platform", "error", err, "platform", platform)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Disconnected",
	})
}

func setStateCookie(c *fiber.Ctx, platform, state string) {
	c.Cookie(&fiber.Cookie{
		Name:     services.OAuthStateCookiePrefix + platform,
		Value:    state,
		Expires:  time.Now().Add(services.OAuthStateTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// consumeStateCookie validates the callback's state parameter against the
// stored cookie and deletes the cookie either way
func consumeStateCookie(c *fiber.Ctx, platform string) error {
	cookieName := services.OAuthStateCookiePrefix + platform
	stored := c.Cookies(cookieName)
	received := c.Query("state")

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	if stored == "" || received == "" || stored != received {
		return fiber.ErrBadRequest
	}
	return nil
}
