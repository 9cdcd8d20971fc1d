// Package catalogsvc exposes the read-only product catalog.
package catalogsvc

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shoplane/storefront/internal/app/domain/catalog"
	"github.com/shoplane/storefront/internal/app/storage"
	"github.com/shoplane/storefront/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

// Service reads products out of the seeded store.
type Service struct {
	store storage.ProductStore
	log   *logger.Logger
}

// New constructs a catalog service.
func New(store storage.ProductStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Service{store: store, log: log}
}

// List returns every product in seed order.
func (s *Service) List(ctx context.Context) ([]catalog.Product, error) {
	return s.store.ListProducts(ctx)
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, id int) (catalog.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return catalog.Product{}, ErrProductNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

// Seed loads the catalog into the store: from a YAML file when path is
// non-empty, otherwise the built-in product set.
func (s *Service) Seed(ctx context.Context, path string) error {
	products := catalog.DefaultProducts()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return fmt.Errorf("load catalog %s: %w", path, err)
		}
		products = loaded
	}

	if err := s.store.ReplaceProducts(ctx, products); err != nil {
		return err
	}
	s.log.WithField("products", len(products)).Info("catalog seeded")
	return nil
}

// LoadFile parses a YAML catalog file of the form:
//
//	products:
//	  - id: 1
//	    name: Premium Headphones
//	    price: 199.99
func LoadFile(path string) ([]catalog.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Products []struct {
			ID          int     `yaml:"id"`
			Name        string  `yaml:"name"`
			Description string  `yaml:"description"`
			Price       float64 `yaml:"price"`
			Image       string  `yaml:"image"`
			Category    string  `yaml:"category"`
		} `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog file has no products")
	}

	seen := make(map[int]bool, len(doc.Products))
	products := make([]catalog.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d: price cannot be negative", p.ID)
		}
		seen[p.ID] = true
		products = append(products, catalog.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Category:    p.Category,
		})
	}
	return products, nil
}
