package aggregate

// GameRef is the normalized shape for one game row. Visits is set (possibly
// zero) only for created games; URL only when the upstream row carried a
// root place id.
type GameRef struct {
	ID     *int64  `json:"id"`
	Name   string  `json:"name"`
	Visits *int64  `json:"visits,omitempty"`
	URL    *string `json:"url,omitempty"`
}

// InventoryItem is the normalized shape for one collectible asset. Image is
// derived from the asset id and absent when no id could be extracted.
type InventoryItem struct {
	ID    *int64  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

type Summary struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	ScoutScore  int    `json:"scoutScore"`
}

// AggregatedProfile is the merged best-effort lookup result. The three list
// fields are always non-nil so they serialize as arrays, and every field
// that could not be populated contributes one entry to Notes.
type AggregatedProfile struct {
	Profile      map[string]any  `json:"profile"`
	Avatar       *string         `json:"avatar"`
	Favorites    []GameRef       `json:"favorites"`
	CreatedGames []GameRef       `json:"createdGames"`
	Inventory    []InventoryItem `json:"inventory"`
	Notes        []string        `json:"notes"`
	Summary      Summary         `json:"summary"`
}
