package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type productService struct {
	products repository.ProductRepo
	observer UseCaseObserver
}

func NewProductService(products repository.ProductRepo, observers ...UseCaseObserver) ProductService {
	return &productService{products: products, observer: combineObservers(observers)}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) (err error) {
	uc := startUseCase(s.observer, "create-product", "")
	defer func() { uc.finish(ctx, err) }()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Invalidf("product name is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	uc.set("product", p.ID)
	return s.products.Create(ctx, p)
}

func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) Rename(ctx context.Context, id, name string) (err error) {
	uc := startUseCase(s.observer, "rename-product", "")
	uc.set("product", id)
	defer func() { uc.finish(ctx, err) }()

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	if p.Name == "" {
		return domain.Invalidf("product name is required")
	}
	p.UpdatedAt = time.Now().UTC()
	return s.products.Update(ctx, p)
}

// Delete removes the product. Its plans stay and lose the link.
func (s *productService) Delete(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "delete-product", "")
	uc.set("product", id)
	defer func() { uc.finish(ctx, err) }()

	return s.products.Delete(ctx, id)
}
