package player

// ListPlayersRequest filters and pages the catalog
type ListPlayersRequest struct {
	Position string
	Limit    int
	Offset   int
}

// Page is one page of catalog players with the total matching count
type Page[T any] struct {
	Items  []T   `json:"players"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
