// Package catalog provides read-only indexed access to the question items
// served by the labeling flow. The catalog is loaded once at startup and
// injected into the services that need it; a load failure is fatal.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vinash85/polypLabeler/internal/models"
)

// ErrNotFound is returned for an index outside [0, Len()).
var ErrNotFound = errors.New("question not found")

// Catalog is an immutable ordered sequence of question items.
type Catalog struct {
	items []models.QuestionItem
}

// Load reads the catalog JSON file: an array of objects with image, question
// and options fields.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var items []models.QuestionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	for i, item := range items {
		if item.Image == "" {
			return nil, fmt.Errorf("catalog item %d has no image name", i)
		}
	}

	return &Catalog{items: items}, nil
}

// Get returns the item at index, or ErrNotFound past either end.
func (c *Catalog) Get(index int) (models.QuestionItem, error) {
	if index < 0 || index >= len(c.items) {
		return models.QuestionItem{}, ErrNotFound
	}
	return c.items[index], nil
}

// FindByImage returns the item keyed by the given image name.
func (c *Catalog) FindByImage(image string) (models.QuestionItem, error) {
	for _, item := range c.items {
		if item.Image == image {
			return item, nil
		}
	}
	return models.QuestionItem{}, ErrNotFound
}

// Len returns the total item count.
func (c *Catalog) Len() int {
	return len(c.items)
}
