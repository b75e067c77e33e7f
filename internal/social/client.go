// Package social posts contest announcements, comments and direct messages
// to the reddit-style platform. Every call goes through a shared rate
// limiter and bounded retries; the platform throttles aggressively and a
// dropped announcement is better than a banned bot account.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/shepherdjay/gwg-bot/internal/observability"
)

const (
	defaultBaseURL = "https://oauth.reddit.com"
	maxAttempts    = 5
	retryBackoff   = 2 * time.Second

	// unknownUserError is the platform's error code for a recipient that does
	// not exist. Retrying cannot fix it.
	unknownUserError = "USER_DOESNT_EXIST"
)

// Config holds the script-app credentials and posting targets.
type Config struct {
	BaseURL      string   `yaml:"base_url"`
	TokenURL     string   `yaml:"token_url"`
	UserAgent    string   `yaml:"user_agent"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Username     string   `yaml:"username"`
	Password     string   `yaml:"password"`
	Subreddit    string   `yaml:"subreddit"`
	// Owners receive operational alerts (missing contest form on a game day).
	Owners []string `yaml:"owners"`
}

// Client is an authenticated platform session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	backoff    time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient authenticates with the password grant the platform uses for
// script apps.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger, metrics *observability.Metrics) (*Client, error) {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = "https://www.reddit.com/api/v1/access_token"
	}
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	token, err := conf.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("authenticate social client: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: conf.Client(ctx, token),
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		backoff:    retryBackoff,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// NewClientWithHTTP builds an unauthenticated client for tests.
func NewClientWithHTTP(httpClient *http.Client, baseURL string, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  "gwg-bot-test",
		limiter:    rate.NewLimiter(rate.Inf, 1),
		backoff:    time.Millisecond,
		logger:     logger,
		metrics:    metrics,
	}
}

// apiResponse is the envelope the platform wraps form-API results in.
type apiResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
		Data   struct {
			Name string `json:"name"`
		} `json:"data"`
	} `json:"json"`
}

// SubmitPost creates a self post and returns its fullname.
func (c *Client) SubmitPost(ctx context.Context, subreddit, title, body string) (string, error) {
	form := url.Values{
		"sr":       {subreddit},
		"kind":     {"self"},
		"title":    {title},
		"text":     {body},
		"api_type": {"json"},
	}
	resp, err := c.postForm(ctx, "submit", "/api/submit", form)
	if err != nil {
		return "", err
	}
	if len(resp.JSON.Errors) > 0 {
		return "", fmt.Errorf("submit post: %v", resp.JSON.Errors)
	}
	return resp.JSON.Data.Name, nil
}

// Comment replies to a post or comment.
func (c *Client) Comment(ctx context.Context, parentFullname, body string) error {
	form := url.Values{
		"thing_id": {parentFullname},
		"text":     {body},
		"api_type": {"json"},
	}
	resp, err := c.postForm(ctx, "comment", "/api/comment", form)
	if err != nil {
		return err
	}
	if len(resp.JSON.Errors) > 0 {
		return fmt.Errorf("comment on %s: %v", parentFullname, resp.JSON.Errors)
	}
	return nil
}

// SendMessage delivers a direct message. An unknown recipient is logged and
// skipped; every other failure is an error.
func (c *Client) SendMessage(ctx context.Context, recipient, subject, body string) error {
	form := url.Values{
		"to":       {recipient},
		"subject":  {subject},
		"text":     {body},
		"api_type": {"json"},
	}
	resp, err := c.postForm(ctx, "message", "/api/compose", form)
	if err != nil {
		return err
	}
	for _, apiErr := range resp.JSON.Errors {
		if len(apiErr) > 0 && apiErr[0] == unknownUserError {
			c.logger.WarnContext(ctx, "recipient does not exist, skipping message",
				slog.String("recipient", recipient),
			)
			return nil
		}
	}
	if len(resp.JSON.Errors) > 0 {
		return fmt.Errorf("message %s: %v", recipient, resp.JSON.Errors)
	}
	return nil
}

// listing is the slice of a subreddit listing the thread search reads.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Name  string `json:"name"`
				Title string `json:"title"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// FindThread scans the subreddit's hot listing for the first post whose
// title contains the given fragment, case-insensitively.
func (c *Client) FindThread(ctx context.Context, subreddit, titleFragment string) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=25", c.baseURL, subreddit)

	var decoded listing
	err := c.do(ctx, "find_thread", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, &decoded)
	if err != nil {
		return "", false, err
	}

	fragment := strings.ToLower(titleFragment)
	for _, child := range decoded.Data.Children {
		if strings.Contains(strings.ToLower(child.Data.Title), fragment) {
			return child.Data.Name, true, nil
		}
	}
	return "", false, nil
}

func (c *Client) postForm(ctx context.Context, kind, path string, form url.Values) (*apiResponse, error) {
	endpoint := c.baseURL + path
	encoded := form.Encode()

	var decoded apiResponse
	err := c.do(ctx, kind, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, &decoded)
	if err != nil {
		return nil, err
	}
	return &decoded, nil
}

// do runs one API call through the limiter with bounded retries on
// transient failures.
func (c *Client) do(ctx context.Context, kind string, build func() (*http.Request, error), out any) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		c.metrics.NotifyAttempts.WithLabelValues(kind).Inc()

		req, err := build()
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		retryable, err := c.doOnce(req, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.logger.WarnContext(ctx, "social call failed, retrying",
			slog.String("kind", kind),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
	}

	c.metrics.NotifyFailures.WithLabelValues(kind).Inc()
	return fmt.Errorf("%s: %w", kind, lastErr)
}

func (c *Client) doOnce(req *http.Request, out any) (bool, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return true, fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	if out == nil {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}
