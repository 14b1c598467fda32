package supabase

import (
	"fmt"

	"resume-intake/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// Client owns the connection settings for a Supabase project and hands the
// typed client to repositories once initialized.
type Client struct {
	client *supabase.Client
	url    string
	key    string
	logger domain.Logger
}

// NewClient creates a Supabase client wrapper. Call Initialize before DB.
func NewClient(url, key string, logger domain.Logger) *Client {
	return &Client{
		url:    url,
		key:    key,
		logger: logger,
	}
}

// Initialize establishes the Supabase client using the service key.
func (c *Client) Initialize() error {
	if c.url == "" || c.key == "" {
		return fmt.Errorf("supabase URL and service key must be provided")
	}

	client, err := supabase.NewClient(c.url, c.key, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	c.client = client
	c.logger.Info("Supabase client initialized successfully", "url", c.url)
	return nil
}

// DB returns the typed client, or nil before Initialize succeeds.
func (c *Client) DB() *supabase.Client {
	return c.client
}
