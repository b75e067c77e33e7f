// Package sheets is the record-store client: the contest registry, response
// rows and history sheets live in a Google Sheets workbook reached over the
// values REST API with a service-account token.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	scope          = "https://www.googleapis.com/auth/spreadsheets"

	// registryRange covers the registry worksheet: title, start, three
	// question/answer pairs, ready flag, written flag.
	registryRange = "Rounds!A2:J"

	leaderboardSheet = "Leaderboard"
)

// Config locates the workbook and the service-account credentials.
type Config struct {
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"`
	// BaseURL overrides the Sheets API endpoint, for tests.
	BaseURL string `yaml:"base_url"`
}

// Client talks to one workbook.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	loc           *time.Location
	logger        *slog.Logger
}

// NewClient builds a client authenticated with the configured service
// account.
func NewClient(ctx context.Context, cfg Config, loc *time.Location, logger *slog.Logger) (*Client, error) {
	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(creds, scope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:    jwtConfig.Client(ctx),
		baseURL:       baseURL,
		spreadsheetID: cfg.SpreadsheetID,
		loc:           loc,
		logger:        logger,
	}, nil
}

// NewClientWithHTTP builds a client over an existing HTTP client. Tests point
// it at an httptest server.
func NewClientWithHTTP(httpClient *http.Client, baseURL, spreadsheetID string, loc *time.Location, logger *slog.Logger) *Client {
	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		loc:           loc,
		logger:        logger,
	}
}

// ListRounds reads the contest registry.
func (c *Client) ListRounds(ctx context.Context) ([]RoundSheet, error) {
	values, err := c.get(ctx, registryRange)
	if err != nil {
		return nil, err
	}

	rounds := make([]RoundSheet, 0, len(values))
	for i, row := range values {
		sheet, err := parseRegistryRow(row, i+2, c.loc)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed registry row",
				slog.Int("row", i+2),
				slog.Any("error", err),
			)
			continue
		}
		rounds = append(rounds, sheet)
	}
	return rounds, nil
}

// Entries reads the raw response rows for a round, oldest first.
func (c *Client) Entries(ctx context.Context, title string) ([]EntryRow, error) {
	values, err := c.get(ctx, title+"!A2:E")
	if err != nil {
		return nil, err
	}

	entries := make([]EntryRow, 0, len(values))
	for i, row := range values {
		entry, err := parseEntryRow(row, c.loc)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed response row",
				slog.String("sheet", title),
				slog.Int("row", i+2),
				slog.Any("error", err),
			)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteRoundHistory writes a scored round's audit sheet to its history
// worksheet. Rewriting the same round overwrites in place.
func (c *Client) WriteRoundHistory(ctx context.Context, round string, history RoundHistory) error {
	values := make([][]string, 0, len(history.Rows)+len(history.LateRows)+4)
	values = append(values, history.Columns)
	values = append(values, history.Rows...)
	if len(history.LateRows) > 0 {
		values = append(values, []string{}, []string{"Late entries"})
		values = append(values, history.LateRows...)
	}
	if len(history.Summary) > 0 {
		values = append(values, []string{}, history.Summary)
	}
	return c.put(ctx, round+" History!A1", values)
}

// MarkWritten flips the registry's written flag for the round.
func (c *Client) MarkWritten(ctx context.Context, sheet RoundSheet) error {
	rng := fmt.Sprintf("Rounds!J%d", sheet.RowIndex)
	return c.put(ctx, rng, [][]string{{"TRUE"}})
}

// WriteLeaderboard overwrites the standings worksheet, best player first.
func (c *Client) WriteLeaderboard(ctx context.Context, rows [][]string) error {
	return c.put(ctx, leaderboardSheet+"!A1", rows)
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

func (c *Client) get(ctx context.Context, rng string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(rng))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build values request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", rng, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("read range %s: status %d: %s", rng, resp.StatusCode, body)
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode range %s: %w", rng, err)
	}
	return vr.Values, nil
}

func (c *Client) put(ctx context.Context, rng string, values [][]string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW", c.baseURL, c.spreadsheetID, url.PathEscape(rng))

	body, err := json.Marshal(valueRange{Values: values})
	if err != nil {
		return fmt.Errorf("marshal values for %s: %w", rng, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("write range %s: %w", rng, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("write range %s: status %d: %s", rng, resp.StatusCode, respBody)
	}
	return nil
}
