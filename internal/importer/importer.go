// Package importer loads a drinks catalog feed (JSON) into the product and
// category tables.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/willotis/tamarind-drinks-app/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

// Feed is the on-disk catalog format: categories first, then products that
// reference them by name.
type Feed struct {
	Categories []FeedCategory `json:"categories"`
	Products   []FeedProduct  `json:"products"`
}

type FeedCategory struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

type FeedProduct struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	InStock     *bool    `json:"inStock"`
	Sizes       []string `json:"sizes"`
	Featured    bool     `json:"featured"`
}

// Importer upserts a catalog feed, creating categories before the products
// that reference them.
type Importer struct {
	products   ProductWriter
	categories CategoryWriter
}

func New(products ProductWriter, categories CategoryWriter) *Importer {
	return &Importer{products: products, categories: categories}
}

// Run parses the feed and upserts its contents. It returns the number of
// products written.
func (i *Importer) Run(ctx context.Context, r io.Reader) (int, error) {
	var feed Feed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return 0, fmt.Errorf("decode feed: %w", err)
	}

	categoryIDs := make(map[string]string, len(feed.Categories))
	for _, fc := range feed.Categories {
		name := strings.TrimSpace(fc.Name)
		if name == "" {
			return 0, fmt.Errorf("category with empty name")
		}
		stored, err := i.categories.Upsert(ctx, domain.Category{Name: name, ImageURL: fc.ImageURL})
		if err != nil {
			return 0, fmt.Errorf("upsert category %q: %w", name, err)
		}
		categoryIDs[name] = stored.ID
	}

	imported := 0
	for _, fp := range feed.Products {
		if err := validateProduct(fp); err != nil {
			return imported, err
		}
		categoryID, ok := categoryIDs[fp.Category]
		if !ok {
			return imported, fmt.Errorf("product %q references unknown category %q", fp.Name, fp.Category)
		}
		inStock := true
		if fp.InStock != nil {
			inStock = *fp.InStock
		}
		_, err := i.products.Upsert(ctx, domain.Product{
			Name:        fp.Name,
			Description: fp.Description,
			Price:       fp.Price,
			ImageURL:    fp.ImageURL,
			CategoryID:  categoryID,
			Rating:      fp.Rating,
			ReviewCount: fp.ReviewCount,
			InStock:     inStock,
			Sizes:       fp.Sizes,
			Featured:    fp.Featured,
		})
		if err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", fp.Name, err)
		}
		imported++
	}

	return imported, nil
}

func validateProduct(fp FeedProduct) error {
	if strings.TrimSpace(fp.Name) == "" {
		return fmt.Errorf("product with empty name")
	}
	if fp.Price <= 0 {
		return fmt.Errorf("product %q: price must be positive", fp.Name)
	}
	if strings.TrimSpace(fp.Category) == "" {
		return fmt.Errorf("product %q: category required", fp.Name)
	}
	return nil
}
