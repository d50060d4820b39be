package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// ErrUserNotFound means the username resolution call succeeded but no
// matching account exists. Callers must tell this apart from transport
// or decode failures.
var ErrUserNotFound = errors.New("user_not_found")

// Endpoints holds the base URLs of the Roblox sub-APIs. Each sub-API is
// independently reachable and independently fallible.
type Endpoints struct {
	Users      string
	Games      string
	Thumbnails string
	Inventory  string
	WWW        string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Users:      "https://users.roblox.com",
		Games:      "https://games.roblox.com",
		Thumbnails: "https://thumbnails.roblox.com",
		Inventory:  "https://inventory.roblox.com",
		WWW:        "https://www.roblox.com",
	}
}

type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	eps        Endpoints
}

func NewClient(logger *slog.Logger, eps Endpoints) *Client {
	return &Client{
		logger:     logger,
		httpClient: NewHTTPClient(),
		eps:        eps,
	}
}

// Endpoints returns the base URLs the client was built with.
func (c *Client) Endpoints() Endpoints {
	return c.eps
}

// Identity is the result of resolving a username to a stable user id.
type Identity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Game is a raw row from the games API. Created games and favorites use
// overlapping but not identical field names, so alternates are kept as
// pointers and resolved during normalization.
type Game struct {
	ID          *int64 `json:"id"`
	RootPlaceID *int64 `json:"rootPlaceId"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Visits      *int64 `json:"visits"`
	TotalVisits *int64 `json:"totalVisits"`
}

// Asset is a raw row from the collectibles inventory API.
type Asset struct {
	ID        *int64 `json:"id"`
	AssetID   *int64 `json:"assetId"`
	ItemID    *int64 `json:"itemId"`
	Name      string `json:"name"`
	AssetName string `json:"assetName"`
}

// Thumbnail is a raw row from the thumbnails API.
type Thumbnail struct {
	TargetID int64  `json:"targetId"`
	State    string `json:"state"`
	ImageURL string `json:"imageUrl"`
}

// ResolveUsername maps a username to an Identity. Returns ErrUserNotFound
// when no account matches; any other error is a transport, status or
// decode failure.
func (c *Client) ResolveUsername(ctx context.Context, username string) (*Identity, error) {
	body, err := json.Marshal(map[string]any{"usernames": []string{username}})
	if err != nil {
		return nil, fmt.Errorf("encode_request_failed: %w", err)
	}

	var out struct {
		Data []Identity `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.eps.Users+"/v1/usernames/users", body, &out); err != nil {
		return nil, err
	}

	if len(out.Data) == 0 || out.Data[0].ID == 0 {
		return nil, ErrUserNotFound
	}
	return &out.Data[0], nil
}

// Profile fetches the raw profile object for a user.
func (c *Client) Profile(ctx context.Context, userID int64) (map[string]any, error) {
	var out map[string]any
	u := fmt.Sprintf("%s/v1/users/%d", c.eps.Users, userID)
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvatarHeadshot fetches the avatar headshot thumbnail rows for a user.
func (c *Client) AvatarHeadshot(ctx context.Context, userID int64) ([]Thumbnail, error) {
	q := url.Values{}
	q.Set("userIds", fmt.Sprintf("%d", userID))
	q.Set("size", "150x150")
	q.Set("format", "Png")
	q.Set("isCircular", "false")

	var out struct {
		Data []Thumbnail `json:"data"`
	}
	u := c.eps.Thumbnails + "/v1/users/avatar-headshot?" + q.Encode()
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// FavoriteGames fetches the games a user has favorited (first page only).
func (c *Client) FavoriteGames(ctx context.Context, userID int64) ([]Game, error) {
	u := fmt.Sprintf("%s/v2/users/%d/favorite/games?limit=25", c.eps.Games, userID)
	return c.fetchGames(ctx, u)
}

// CreatedGames fetches the games a user has published (first page only).
func (c *Client) CreatedGames(ctx context.Context, userID int64) ([]Game, error) {
	u := fmt.Sprintf("%s/v2/users/%d/games?limit=25", c.eps.Games, userID)
	return c.fetchGames(ctx, u)
}

// Collectibles fetches a user's collectible assets. May come back empty
// depending on inventory privacy settings.
func (c *Client) Collectibles(ctx context.Context, userID int64) ([]Asset, error) {
	var out struct {
		Data []Asset `json:"data"`
	}
	u := fmt.Sprintf("%s/v1/users/%d/assets/collectibles?limit=25", c.eps.Inventory, userID)
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) fetchGames(ctx context.Context, u string) ([]Game, error) {
	var out struct {
		Data []Game `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// doJSON performs exactly one round-trip. Transport failure, non-2xx
// status and malformed payloads are all reported uniformly as an error;
// no retries.
func (c *Client) doJSON(ctx context.Context, method, u string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("create_request_failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("roblox_request_failed", "url", u, "error", err)
		return fmt.Errorf("request_failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		c.logger.Debug("roblox_bad_status", "url", u, "status", resp.StatusCode)
		return fmt.Errorf("unexpected_status: %d from %s", resp.StatusCode, hostOf(u))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode_response_failed: %w", err)
	}
	return nil
}

func hostOf(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return strings.SplitN(u, "/", 2)[0]
	}
	return parsed.Host
}
