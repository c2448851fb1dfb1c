package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/importer"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: combineObservers(observers)}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	uc := startUseCase(s.observer, "import-plan", "")
	uc.set("short_id", schema.Plan.ShortID)
	defer func() { uc.finish(ctx, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	if err = generated.Plan.ValidateShortID(); err != nil {
		return nil, err
	}
	uc.forPlan(generated.Plan.ID)
	uc.set("phase_count", len(generated.Phases))
	uc.set("feature_count", len(generated.Features))

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if generated.Product != "" {
			productID, err := findOrCreateProduct(ctx, repository.NewSQLiteProductRepo(tx), generated.Product)
			if err != nil {
				return err
			}
			generated.Plan.ProductID = &productID
		}

		if err := repository.NewSQLitePlanRepo(tx).Create(ctx, generated.Plan); err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}

		txPhases := repository.NewSQLitePhaseRepo(tx)
		for _, ph := range generated.Phases {
			if err := txPhases.Create(ctx, ph); err != nil {
				return fmt.Errorf("creating phase %q: %w", ph.Title, err)
			}
		}

		txFeatures := repository.NewSQLiteFeatureRepo(tx)
		for _, f := range generated.Features {
			if err := txFeatures.Create(ctx, f); err != nil {
				return fmt.Errorf("creating feature %q: %w", f.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Plan:         generated.Plan,
		PhaseCount:   len(generated.Phases),
		FeatureCount: len(generated.Features),
	}, nil
}

func findOrCreateProduct(ctx context.Context, products repository.ProductRepo, name string) (string, error) {
	existing, err := products.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing products: %w", err)
	}
	for _, p := range existing {
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}
	now := time.Now().UTC()
	p := &domain.Product{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := products.Create(ctx, p); err != nil {
		return "", fmt.Errorf("creating product %q: %w", name, err)
	}
	return p.ID, nil
}
