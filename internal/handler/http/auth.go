package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/oauth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/goccy/go-json"
)

const oauthStateCookieName = "oauth_state"

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	frontendURL   string
	secureCookie  bool
}

// NewAuthHandler wires the auth endpoints. googleService may be nil when
// Google sign-in is not configured.
func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, frontendURL string, secureCookie bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		frontendURL:   frontendURL,
		secureCookie:  secureCookie,
	}
}

func sessionTracking(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq, sessionTracking(r))
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully")
	response.Created(w, "User logged in successfully", tokenResponse)
}

// LoginWithGoogle implements AuthHandler.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrGoogleLoginDisabled)
		return
	}

	state, err := a.googleService.GenerateState()
	if err != nil {
		slog.Error("LoginWithGoogle state error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/api/v1/auth/oauth/callback/google",
		Expires:  time.Now().Add(5 * time.Minute),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	redirectWithError := func(errorMsg string) {
		redirectURL := fmt.Sprintf("%s/auth/callback/google?error=%s", a.frontendURL, url.QueryEscape(errorMsg))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}

	if a.googleService == nil {
		redirectWithError("google_login_disabled")
		return
	}

	if errorValue := r.URL.Query().Get("error"); errorValue != "" {
		slog.Error("Error in OAuth callback", "error", errorValue)
		redirectWithError(errorValue)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" {
		slog.Error("State cookie not found", "error", err)
		redirectWithError("state_cookie_not_found")
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		slog.Error("State mismatch", "error", auth.ErrStateMismatch)
		redirectWithError("state_mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		redirectWithError("code_empty")
		return
	}

	token, err := a.googleService.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("Failed to exchange code", "error", err)
		redirectWithError("token_verification_failed")
		return
	}

	userGoogle, err := a.googleService.UserInfo(r.Context(), token)
	if err != nil {
		slog.Error("Failed to verify user", "error", err)
		redirectWithError("user_verification_failed")
		return
	}

	tokenResponse, err := a.authService.LoginWithGoogle(r.Context(), userGoogle.Email, userGoogle.GoogleID, sessionTracking(r))
	if err != nil {
		slog.Error("Failed to login with Google", "error", err)
		redirectWithError("login_failed")
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	slog.Info("User logged in successfully via Google OAuth")

	redirectURL := fmt.Sprintf("%s/auth/callback/google?access_token=%s&expires_in=%d",
		a.frontendURL,
		url.QueryEscape(tokenResponse.AccessToken),
		tokenResponse.AccessTokenExpiresIn,
	)
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// Logout implements AuthHandler. A bearer access token, when present, is
// denied for the rest of its lifetime as well.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshTokenCookie, err := r.Cookie(jwt.RefreshTokenCookieName)
	if err != nil {
		response.HandleError(w, auth.ErrRefreshTokenCookieNotFound)
		return
	}
	if refreshTokenCookie.Value == "" {
		response.HandleError(w, auth.ErrRefreshTokenCookieEmpty)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshTokenCookie.Value); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if bearer := jwtauth.TokenFromHeader(r); bearer != "" {
		if token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), bearer); err == nil {
			a.jwtService.RevokeToken(bearer, token.Expiration().Unix())
		}
	}

	http.SetCookie(w, a.jwtService.ClearRefreshTokenCookie())
	response.SuccessWithMessage(w, "User logged out successfully", nil)
}

// RefreshToken implements AuthHandler. The cookie is preferred over the body.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenReq auth.RefreshTokenRequest

	refreshTokenCookie, err := r.Cookie(jwt.RefreshTokenCookieName)
	if err == nil && refreshTokenCookie.Value != "" {
		refreshTokenReq.RefreshToken = refreshTokenCookie.Value
	} else if err := json.NewDecoder(r.Body).Decode(&refreshTokenReq); err != nil {
		slog.Error("Refresh Token decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := refreshTokenReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), refreshTokenReq, sessionTracking(r))
	if err != nil {
		slog.Error("Refresh Token service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	response.Created(w, "Token refreshed successfully", tokenResponse)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	me, err := a.authService.Me(r.Context(), principal.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, me)
}
