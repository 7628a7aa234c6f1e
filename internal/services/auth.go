package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// AuthService wraps the Supabase GoTrue email/password endpoints. The
// service never stores credentials; tokens pass through to the client.
type AuthService struct {
	httpClient *http.Client
	logger     *logrus.Logger
	baseURL    string
	anonKey    string
}

// AuthSession is the token bundle returned by signup and login.
type AuthSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	TokenType    string    `json:"token_type"`
	User         *AuthUser `json:"user,omitempty"`
}

// AuthUser is the profile subset the API exposes.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type authErrorBody struct {
	Message          string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func NewAuthService(supabaseURL, anonKey string, logger *logrus.Logger) *AuthService {
	return &AuthService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		baseURL:    supabaseURL,
		anonKey:    anonKey,
	}
}

// Enabled reports whether auth is configured.
func (s *AuthService) Enabled() bool {
	return s.baseURL != "" && s.anonKey != ""
}

// SignUp registers a new email/password account.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}
	var session AuthSession
	if err := s.post(ctx, "/auth/v1/signup", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignInWithPassword exchanges email/password credentials for a session.
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}
	var session AuthSession
	if err := s.post(ctx, "/auth/v1/token?grant_type=password", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser fetches the profile behind an access token.
func (s *AuthService) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("auth not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: %s", authErrorMessage(body, resp.StatusCode))
	}

	var user AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode auth user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) post(ctx context.Context, path, token string, payload, target interface{}) error {
	if !s.Enabled() {
		return fmt.Errorf("auth not configured")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.WithField("status", resp.StatusCode).Warn("Auth request rejected")
		return fmt.Errorf("auth: %s", authErrorMessage(body, resp.StatusCode))
	}

	return json.Unmarshal(body, target)
}

// authErrorMessage pulls the most specific message GoTrue provides.
func authErrorMessage(body []byte, status int) string {
	var e authErrorBody
	if err := json.Unmarshal(body, &e); err == nil {
		for _, msg := range []string{e.Message, e.ErrorDescription, e.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
