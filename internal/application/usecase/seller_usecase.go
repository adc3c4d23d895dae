package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

// SellerUseCase CRUD de vendedores.
type SellerUseCase struct {
	repo repository.SellerRepository
}

// NewSellerUseCase construye el caso de uso.
func NewSellerUseCase(repo repository.SellerRepository) *SellerUseCase {
	return &SellerUseCase{repo: repo}
}

// Create registra un vendedor.
func (uc *SellerUseCase) Create(ctx context.Context, in dto.SellerRequest) (*dto.SellerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("El nombre del vendedor es obligatorio.")
	}
	seller := &entity.Seller{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, seller); err != nil {
		return nil, err
	}
	return toSellerResponse(seller), nil
}

// GetByID obtiene un vendedor.
func (uc *SellerUseCase) GetByID(ctx context.Context, id string) (*dto.SellerResponse, error) {
	seller, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}
	return toSellerResponse(seller), nil
}

// List lista los vendedores.
func (uc *SellerUseCase) List(ctx context.Context) ([]dto.SellerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SellerResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSellerResponse(s))
	}
	return items, nil
}

// Update cambia el nombre del vendedor.
func (uc *SellerUseCase) Update(ctx context.Context, id string, in dto.SellerRequest) (*dto.SellerResponse, error) {
	seller, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("El nombre del vendedor es obligatorio.")
	}
	seller.Name = name
	if err := uc.repo.Update(ctx, seller); err != nil {
		return nil, err
	}
	return toSellerResponse(seller), nil
}

// Delete elimina un vendedor. Sus cotizaciones dejan de aparecer en el reporte por vendedor.
func (uc *SellerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toSellerResponse(s *entity.Seller) *dto.SellerResponse {
	return &dto.SellerResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}
