package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketgo/internal/dataservice"
	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/utils"
)

// Service exposes fixed-price listings over the data service
type Service struct {
	db dataservice.Store
}

// NewService creates a new listing service instance
func NewService(db dataservice.Store) *Service {
	return &Service{db: db}
}

// CreateProduct persists a new fixed-price listing
func (s *Service) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	if product.Title == "" || product.Seller == "" {
		return models.Product{}, fmt.Errorf("service: %w - missing title or seller", marketerrors.ErrInvalidInput)
	}
	if product.Price < 0 {
		return models.Product{}, fmt.Errorf("service: %w - negative price", marketerrors.ErrInvalidInput)
	}

	product.ProductID = utils.GenerateID()
	product.CreatedAt = time.Now().UTC()

	if err := s.db.Insert(ctx, dataservice.TableProducts, productToRow(product)); err != nil {
		return models.Product{}, fmt.Errorf("service: failed to create product: %w", err)
	}
	return product, nil
}

// GetProduct returns a single listing by id
func (s *Service) GetProduct(ctx context.Context, productID string) (models.Product, error) {
	if productID == "" {
		return models.Product{}, fmt.Errorf("service: %w - empty product ID", marketerrors.ErrInvalidInput)
	}

	rows, err := s.db.Select(ctx, dataservice.TableProducts, dataservice.Filter{"product_id": productID}, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to get product %s: %w", productID, err)
	}
	if len(rows) == 0 {
		return models.Product{}, fmt.Errorf("service: product %s: %w", productID, marketerrors.ErrProductNotFound)
	}
	return rowToProduct(rows[0]), nil
}

// Browse returns listings matching the given equality filters, newest
// first. Empty filter values are ignored.
func (s *Service) Browse(ctx context.Context, category, seller string) ([]models.Product, error) {
	filter := dataservice.Filter{}
	if category != "" {
		filter["category"] = category
	}
	if seller != "" {
		filter["seller"] = seller
	}

	rows, err := s.db.Select(ctx, dataservice.TableProducts, filter,
		&dataservice.Order{Column: "created_at", Descending: true})
	if err != nil {
		return nil, fmt.Errorf("service: failed to browse products: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, rowToProduct(row))
	}
	return products, nil
}

// Search returns listings whose title contains the term, case-insensitive.
// The data service only filters on equality, so the match happens here.
func (s *Service) Search(ctx context.Context, term string) ([]models.Product, error) {
	products, err := s.Browse(ctx, "", "")
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products, nil
	}

	matched := make([]models.Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Title), term) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func productToRow(product models.Product) dataservice.Row {
	return dataservice.Row{
		"product_id": product.ProductID,
		"title":      product.Title,
		"price":      product.Price,
		"category":   product.Category,
		"seller":     product.Seller,
		"image":      product.Image,
		"created_at": product.CreatedAt,
	}
}

func rowToProduct(row dataservice.Row) models.Product {
	return models.Product{
		ProductID: row.String("product_id"),
		Title:     row.String("title"),
		Price:     row.Float("price"),
		Category:  row.String("category"),
		Seller:    row.String("seller"),
		Image:     row.String("image"),
		CreatedAt: row.Time("created_at"),
	}
}
