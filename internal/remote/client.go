// Package remote is a thin authenticated client for the backend
// /hap-bilgi endpoints. Every method is a pass-through: no business
// logic lives here, and nothing on the local-orchestration path depends
// on this package.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/edusosyal/hapbilgi/internal/models"
)

// TokenFunc supplies the bearer token for each request. The auth
// collaborator owns token refresh; this client just asks.
type TokenFunc func() (string, error)

// Client talks to the backend hap-bilgi API.
type Client struct {
	baseURL string
	token   TokenFunc
	httpc   *http.Client
}

// NewClient creates a Client for the given base URL. timeout bounds each
// request end to end.
func NewClient(baseURL string, token TokenFunc, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// envelope is the backend's JSON response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: marshal body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	tok, err := c.token()
	if err != nil {
		return fmt.Errorf("remote: get token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("remote: decode %s: %w", path, err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("remote: %s %s: %s", method, path, msg)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("remote: decode data %s: %w", path, err)
		}
	}
	return nil
}

func limitQuery(limit, offset int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

// CreateFromPost asks the backend to derive a tip from an existing post.
func (c *Client) CreateFromPost(ctx context.Context, postID string) (*models.StudyTip, error) {
	var tip models.StudyTip
	if err := c.do(ctx, http.MethodPost, "/hap-bilgi/from-post/"+url.PathEscape(postID), nil, nil, &tip); err != nil {
		return nil, err
	}
	return &tip, nil
}

// Search runs a server-side tip search.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.StudyTip, error) {
	q := limitQuery(limit, 0)
	q.Set("q", query)
	var tips []models.StudyTip
	if err := c.do(ctx, http.MethodGet, "/hap-bilgi/search", q, nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// SimilarQuestions returns tips whose source questions resemble question.
func (c *Client) SimilarQuestions(ctx context.Context, question string, limit int) ([]models.StudyTip, error) {
	q := limitQuery(limit, 0)
	q.Set("q", question)
	var tips []models.StudyTip
	if err := c.do(ctx, http.MethodGet, "/hap-bilgi/similar", q, nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// Like toggles the like flag on a backend-managed tip.
func (c *Client) Like(ctx context.Context, id string) (*models.StudyTip, error) {
	var tip models.StudyTip
	if err := c.do(ctx, http.MethodPost, "/hap-bilgi/"+url.PathEscape(id)+"/like", nil, nil, &tip); err != nil {
		return nil, err
	}
	return &tip, nil
}

// Save toggles the save flag on a backend-managed tip.
func (c *Client) Save(ctx context.Context, id string) (*models.StudyTip, error) {
	var tip models.StudyTip
	if err := c.do(ctx, http.MethodPost, "/hap-bilgi/"+url.PathEscape(id)+"/save", nil, nil, &tip); err != nil {
		return nil, err
	}
	return &tip, nil
}

// Detail fetches a single backend tip.
func (c *Client) Detail(ctx context.Context, id string) (*models.StudyTip, error) {
	var tip models.StudyTip
	if err := c.do(ctx, http.MethodGet, "/hap-bilgi/"+url.PathEscape(id), nil, nil, &tip); err != nil {
		return nil, err
	}
	return &tip, nil
}

// TipsByUser lists a user's backend tips.
func (c *Client) TipsByUser(ctx context.Context, userID string, limit, offset int) ([]models.StudyTip, error) {
	var tips []models.StudyTip
	if err := c.do(ctx, http.MethodGet, "/hap-bilgi/user/"+url.PathEscape(userID), limitQuery(limit, offset), nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// TipsByCategory lists backend tips in a category.
func (c *Client) TipsByCategory(ctx context.Context, category string, limit, offset int) ([]models.StudyTip, error) {
	var tips []models.StudyTip
	if err := c.do(ctx, http.MethodGet, "/hap-bilgi/category/"+url.PathEscape(category), limitQuery(limit, offset), nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}

// LegacyContent fetches pre-migration tip content.
func (c *Client) LegacyContent(ctx context.Context, limit int) ([]models.StudyTip, error) {
	var tips []models.StudyTip
	if err := c.do(ctx, http.MethodGet, "/hap-bilgi/legacy", limitQuery(limit, 0), nil, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}
