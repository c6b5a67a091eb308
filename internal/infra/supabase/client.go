package supabase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"financial-doc-classifier/internal/domain"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
)

var ErrNotInitialized = errors.New("supabase client not initialized")

// Client validates access tokens against Supabase Auth.
type Client struct {
	client *supabase.Client
	url    string
	key    string
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *Client {
	return &Client{
		url:    strings.TrimSpace(config.GetSupabaseURL()),
		key:    strings.TrimSpace(config.GetSupabaseKey()),
		logger: logger,
	}
}

// Initialize creates the underlying SDK client.
func (s *Client) Initialize() error {
	if s.url == "" || s.key == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(s.url, s.key, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", s.url)
	return nil
}

// ValidateToken resolves the user that owns token.
func (s *Client) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if s.client == nil {
		return nil, ErrNotInitialized
	}

	// Headers set on the Supabase client are not sent to GoTrue, so the
	// token has to be attached to the auth client itself.
	resp, err := s.client.Auth.WithToken(token).GetUser()
	if err != nil {
		s.logger.Warn("Supabase rejected access token", "error", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("user not found")
	}

	return toDomainUser(resp.User), nil
}

func toDomainUser(u types.User) *domain.SupabaseUser {
	return &domain.SupabaseUser{
		ID:           u.ID.String(),
		Email:        u.Email,
		UserMetadata: u.UserMetadata,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
}
