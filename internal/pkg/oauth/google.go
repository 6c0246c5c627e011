package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrEmailNotVerified = errors.New("google email is not verified")

type GoogleService interface {
	// GenerateState returns a random value bound to the sign-in attempt.
	GenerateState() (string, error)
	RedirectURL(state string) string
	// Exchange trades the authorization code for a token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// UserInfo fetches the signed-in Google account.
	UserInfo(ctx context.Context, token *oauth2.Token) (GoogleInformation, error)
}

type GoogleServiceImpl struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string) *GoogleServiceImpl {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
	return &GoogleServiceImpl{config: config, userInfoURL: googleUserInfoURL}
}

type GoogleInformation struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

func (g *GoogleServiceImpl) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (g *GoogleServiceImpl) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *GoogleServiceImpl) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}
	return token, nil
}

func (g *GoogleServiceImpl) UserInfo(ctx context.Context, token *oauth2.Token) (GoogleInformation, error) {
	client := g.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return GoogleInformation{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return GoogleInformation{}, fmt.Errorf("failed to fetch google user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleInformation{}, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info GoogleInformation
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleInformation{}, fmt.Errorf("failed to decode google user: %w", err)
	}
	if !info.VerifiedEmail {
		return GoogleInformation{}, ErrEmailNotVerified
	}

	return info, nil
}
