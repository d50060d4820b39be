package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"roscout/internal/roblox"
)

// Aggregator produces one merged profile per lookup. Identity resolution
// must succeed; the five sub-lookups are best-effort and their failures are
// folded into the notes list instead of failing the request.
type Aggregator struct {
	logger *slog.Logger
	client *roblox.Client
}

func New(logger *slog.Logger, client *roblox.Client) *Aggregator {
	return &Aggregator{
		logger: logger,
		client: client,
	}
}

// Lookup resolves username and fans the five sub-lookups out concurrently.
// Returns an error wrapping roblox.ErrUserNotFound when the account does
// not exist, or a generic error when the resolution call itself failed. Any
// other outcome is a fully populated AggregatedProfile.
func (a *Aggregator) Lookup(ctx context.Context, username string) (*AggregatedProfile, error) {
	identity, err := a.client.ResolveUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve_username_failed: %w", err)
	}
	userID := identity.ID

	// settle-all join: every branch writes only its own slot, so the
	// goroutines share nothing until Wait returns
	var (
		profile    map[string]any
		profileErr error
		thumbs     []roblox.Thumbnail
		thumbsErr  error
		favorites  []roblox.Game
		favErr     error
		created    []roblox.Game
		createdErr error
		assets     []roblox.Asset
		assetsErr  error
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		profile, profileErr = a.client.Profile(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		thumbs, thumbsErr = a.client.AvatarHeadshot(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		favorites, favErr = a.client.FavoriteGames(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		created, createdErr = a.client.CreatedGames(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		assets, assetsErr = a.client.Collectibles(ctx, userID)
	}()
	wg.Wait()

	www := a.client.Endpoints().WWW
	out := &AggregatedProfile{
		Favorites:    []GameRef{},
		CreatedGames: []GameRef{},
		Inventory:    []InventoryItem{},
		Notes:        []string{},
	}

	// One note per field that came back failed, malformed or empty. Empty
	// and unreachable are deliberately indistinguishable in the notes text.
	if profileErr == nil && len(profile) > 0 {
		out.Profile = profile
	} else {
		a.noteUnavailable(username, "profile", profileErr, &out.Notes, noteProfile)
	}

	if av := avatarURL(thumbs); thumbsErr == nil && av != nil {
		out.Avatar = av
	} else {
		a.noteUnavailable(username, "avatar", thumbsErr, &out.Notes, noteAvatar)
	}

	if favErr == nil && len(favorites) > 0 {
		out.Favorites = normalizeFavorites(www, favorites)
	} else {
		a.noteUnavailable(username, "favorites", favErr, &out.Notes, noteFavorites)
	}

	if createdErr == nil && len(created) > 0 {
		out.CreatedGames = normalizeCreated(www, created)
	} else {
		a.noteUnavailable(username, "created_games", createdErr, &out.Notes, noteCreated)
	}

	if assetsErr == nil && len(assets) > 0 {
		out.Inventory = normalizeInventory(www, assets)
	} else {
		a.noteUnavailable(username, "inventory", assetsErr, &out.Notes, noteInventory)
	}

	// summary comes from the finalized fields, never from raw payloads, so
	// scoutScore always matches the visible lists
	displayName := identity.Name
	if v, ok := out.Profile["displayName"].(string); ok && v != "" {
		displayName = v
	}
	out.Summary = Summary{
		UserID:      userID,
		Username:    identity.Name,
		DisplayName: displayName,
		ScoutScore:  len(out.Favorites) + len(out.CreatedGames) + len(out.Inventory),
	}

	return out, nil
}

func (a *Aggregator) noteUnavailable(username, field string, err error, notes *[]string, note string) {
	if err != nil {
		a.logger.Debug("sub_lookup_failed", "username", username, "field", field, "error", err)
	}
	*notes = append(*notes, note)
}
