package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/artfoundry/canvaspack/internal/model"
)

// Gallery is the stored collection of generated artworks, newest first.
type Gallery struct {
	Artworks []model.Artwork `json:"artworks"`
}

// DefaultGalleryPath returns the default file path for the gallery store.
// This is located at ~/.canvaspack/gallery.json.
func DefaultGalleryPath() string {
	return filepath.Join(DefaultConfigDir(), "gallery.json")
}

// Save writes the gallery to the specified JSON file.
// It creates parent directories if they do not exist.
func Save(path string, g Gallery) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads the gallery from the specified JSON file.
// If the file does not exist, it returns an empty gallery with no error.
func Load(path string) (Gallery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Gallery{Artworks: []model.Artwork{}}, nil
		}
		return Gallery{}, err
	}
	var g Gallery
	if err := json.Unmarshal(data, &g); err != nil {
		return Gallery{}, err
	}
	if g.Artworks == nil {
		g.Artworks = []model.Artwork{}
	}
	return g, nil
}

// Add prepends an artwork to the gallery. When limit is greater than zero
// the oldest entries beyond the limit are dropped.
func (g *Gallery) Add(art model.Artwork, limit int) {
	g.Artworks = append([]model.Artwork{art}, g.Artworks...)
	if limit > 0 && len(g.Artworks) > limit {
		g.Artworks = g.Artworks[:limit]
	}
}

// Remove deletes the artwork with the given ID. It returns true if an
// entry was removed.
func (g *Gallery) Remove(id string) bool {
	for i, a := range g.Artworks {
		if a.ID == id {
			g.Artworks = append(g.Artworks[:i], g.Artworks[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the artwork with the given ID, or false when absent.
func (g Gallery) Find(id string) (model.Artwork, bool) {
	for _, a := range g.Artworks {
		if a.ID == id {
			return a, true
		}
	}
	return model.Artwork{}, false
}

// Export writes the gallery to a user-specified JSON file.
func Export(path string, g Gallery) error {
	return Save(path, g)
}

// Import reads a gallery from a user-specified JSON file and merges it
// into the existing gallery. Duplicate artwork IDs are skipped.
func Import(path string, existing Gallery) (Gallery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported Gallery
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse gallery file: %w", err)
	}

	ids := make(map[string]bool, len(existing.Artworks))
	for _, a := range existing.Artworks {
		ids[a.ID] = true
	}

	for _, a := range imported.Artworks {
		if !ids[a.ID] {
			existing.Artworks = append(existing.Artworks, a)
			ids[a.ID] = true
		}
	}

	return existing, nil
}
