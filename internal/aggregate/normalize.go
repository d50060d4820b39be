package aggregate

import (
	"fmt"

	"roscout/internal/roblox"
)

// Note texts are part of the wire contract; consumers match on them.
const (
	noteProfile   = "Profile info unavailable."
	noteAvatar    = "Avatar thumbnail unavailable."
	noteFavorites = "Favorite games unavailable or empty."
	noteCreated   = "Created games unavailable or empty."
	noteInventory = "Inventory unavailable or empty."
)

func normalizeFavorites(www string, rows []roblox.Game) []GameRef {
	out := make([]GameRef, 0, len(rows))
	for _, g := range rows {
		ref := GameRef{
			ID:   g.ID,
			Name: firstNonEmpty(g.Name, "Unknown"),
			URL:  gameURL(www, g.RootPlaceID),
		}
		out = append(out, ref)
	}
	return out
}

func normalizeCreated(www string, rows []roblox.Game) []GameRef {
	out := make([]GameRef, 0, len(rows))
	for _, g := range rows {
		id := g.ID
		if id == nil {
			id = g.RootPlaceID
		}
		visits := int64(0)
		if g.Visits != nil {
			visits = *g.Visits
		} else if g.TotalVisits != nil {
			visits = *g.TotalVisits
		}
		ref := GameRef{
			ID:     id,
			Name:   firstNonEmpty(g.Name, firstNonEmpty(g.Title, "Untitled")),
			Visits: &visits,
			URL:    gameURL(www, g.RootPlaceID),
		}
		out = append(out, ref)
	}
	return out
}

func normalizeInventory(www string, rows []roblox.Asset) []InventoryItem {
	out := make([]InventoryItem, 0, len(rows))
	for _, a := range rows {
		id := a.ID
		if id == nil {
			id = a.AssetID
		}
		if id == nil {
			id = a.ItemID
		}
		item := InventoryItem{
			ID:   id,
			Name: firstNonEmpty(a.Name, firstNonEmpty(a.AssetName, "Item")),
		}
		if id != nil {
			u := fmt.Sprintf("%s/asset-thumbnail/image?assetId=%d&width=150&height=150&format=png", www, *id)
			item.Image = &u
		}
		out = append(out, item)
	}
	return out
}

// avatarURL extracts the headshot URL from raw thumbnail rows, or nil when
// the first row carries no usable image.
func avatarURL(rows []roblox.Thumbnail) *string {
	if len(rows) == 0 || rows[0].ImageURL == "" {
		return nil
	}
	u := rows[0].ImageURL
	return &u
}

func gameURL(www string, rootPlaceID *int64) *string {
	if rootPlaceID == nil {
		return nil
	}
	u := fmt.Sprintf("%s/games/%d", www, *rootPlaceID)
	return &u
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
