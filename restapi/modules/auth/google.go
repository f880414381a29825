package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/util"
	"github.com/gofiber/fiber/v2"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// oauthHTTPClient bounds the round trips to Google so a slow upstream cannot
// hold the callback open
var oauthHTTPClient = &http.Client{Timeout: 10 * time.Second}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token"`
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func googleRedirectURI() string {
	return util.GetEnvDefault("GOOGLE_REDIRECT_URI", "http://localhost:3000/api/v1/auth/google/callback")
}

func frontendURL() string {
	return util.GetEnvDefault("FRONTEND_URL", "http://localhost:5173")
}

// loginErrorRedirect sends the browser back to the login page with a
// machine-readable error code
func loginErrorRedirect(c *fiber.Ctx, code string) error {
	return c.Redirect(fmt.Sprintf("%s/login?error=%s", frontendURL(), url.QueryEscape(code)))
}

// GoogleLogin handles GET /auth/google. Redirects the browser to Google's
// consent screen with a random state parameter pinned in a cookie.
func GoogleLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := os.Getenv("GOOGLE_CLIENT_ID")
		if clientID == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Google sign-in is not configured",
			})
		}

		state, err := GenerateSecureToken(32)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to start sign-in",
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     "oauth_state",
			Value:    state,
			Expires:  time.Now().Add(10 * time.Minute),
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})

		params := url.Values{}
		params.Set("client_id", clientID)
		params.Set("redirect_uri", googleRedirectURI())
		params.Set("response_type", "code")
		params.Set("scope", "openid email profile")
		params.Set("state", state)

		return c.Redirect(googleAuthURL + "?" + params.Encode())
	}
}

// GoogleCallback handles GET /auth/google/callback. Exchanges the code for an
// access token, fetches the Google profile, then finds or creates the local
// account. A Google sign-in never touches an existing password hash.
func GoogleCallback(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errCode := c.Query("error"); errCode != "" {
			return loginErrorRedirect(c, "google_denied")
		}

		state := c.Query("state")
		if state == "" || state != c.Cookies("oauth_state") {
			return loginErrorRedirect(c, "invalid_state")
		}

		code := c.Query("code")
		if code == "" {
			return loginErrorRedirect(c, "missing_code")
		}

		info, err := exchangeGoogleCode(code)
		if err != nil {
			database.Logger().Sugar().Warnf("Google OAuth exchange failed: %v", err)
			return loginErrorRedirect(c, "google_exchange_failed")
		}

		email := model.NormalizeEmail(info.Email)
		if email == "" {
			return loginErrorRedirect(c, "no_email")
		}

		ctx := c.Context()
		user, err := getUserByEmail(ctx, db, email)
		switch {
		case err == nil:
			// Existing account: attach the Google identity, keep everything else
			if user.GoogleID != info.ID {
				user.GoogleID = info.ID
				user.UpdatedAt = time.Now()
				if uerr := updateUser(ctx, db, user); uerr != nil {
					database.Logger().Sugar().Warnf("Failed to attach Google ID for %s: %v", email, uerr)
				}
			}
		case err == ErrUserNotFound:
			name := info.Name
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			user = model.NewUser(email, name, model.ProviderGoogle)
			user.GoogleID = info.ID
			if cerr := createUser(ctx, db, user); cerr != nil {
				database.Logger().Sugar().Errorf("Failed to create user from Google profile: %v", cerr)
				return loginErrorRedirect(c, "account_create_failed")
			}
			database.Logger().Sugar().Infof("Created user %s from Google sign-in", email)
		default:
			return loginErrorRedirect(c, "database_unavailable")
		}

		ResolveRoles(ctx, db, user)

		token, err := GenerateJWT(user.Email, user.Name)
		if err != nil {
			return loginErrorRedirect(c, "session_failed")
		}
		SetAuthCookie(c, token)

		redirect := fmt.Sprintf("%s/auth/callback?token=%s&needs_password_setup=%v",
			frontendURL(), url.QueryEscape(token), user.NeedsPasswordSetup())
		return c.Redirect(redirect)
	}
}

// exchangeGoogleCode trades the authorization code for an access token and
// fetches the user profile
func exchangeGoogleCode(code string) (*googleUserInfo, error) {
	form := url.Values{}
	form.Set("client_id", os.Getenv("GOOGLE_CLIENT_ID"))
	form.Set("client_secret", os.Getenv("GOOGLE_CLIENT_SECRET"))
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", googleRedirectURI())

	resp, err := oauthHTTPClient.PostForm(googleTokenURL, form)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok googleTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	req, err := http.NewRequest(http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	infoResp, err := oauthHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer infoResp.Body.Close()

	if infoResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", infoResp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(infoResp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &info, nil
}
