// internal/models/track.go
package models

type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	PreviewURL string   `json:"previewUrl,omitempty"`
	ArtworkURL string   `json:"artworkUrl,omitempty"`
	DurationMS int      `json:"durationMs"`
	Explicit   bool     `json:"explicit"`
}
