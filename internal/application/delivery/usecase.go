package delivery

import (
	"context"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

// Returner devuelve una entrega al inventario de forma atómica (lo implementa quote.UseCase,
// que también marca devuelta la cotización).
type Returner interface {
	ReturnDelivery(ctx context.Context, deliveryID, userID string) (*dto.DeliveryResponse, error)
}

// ListQuery filtros del listado de entregas.
type ListQuery struct {
	Status  string `query:"status" validate:"omitempty,oneof=active devuelta"`
	QuoteID int64  `query:"quoteId"`
}

// UseCase consulta y administración de las notas de entrega.
type UseCase struct {
	repo     repository.DeliveryRepository
	returner Returner
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de entregas.
func NewUseCase(repo repository.DeliveryRepository, returner Returner, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, returner: returner, log: log.Component("deliveries")}
}

// List lista entregas, más recientes primero.
func (uc *UseCase) List(ctx context.Context, q ListQuery) ([]dto.DeliveryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		if q.Status != "" && string(d.Status) != q.Status {
			continue
		}
		if q.QuoteID != 0 && d.QuoteID != q.QuoteID {
			continue
		}
		out = append(out, *dto.FromDelivery(d))
	}
	return out, nil
}

// GetByID obtiene una entrega.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromDelivery(d), nil
}

// ReturnToStock repone el stock de la entrega y la marca devuelta.
func (uc *UseCase) ReturnToStock(ctx context.Context, id, userID string) (*dto.DeliveryResponse, error) {
	return uc.returner.ReturnDelivery(ctx, id, userID)
}

// Delete elimina el registro de la entrega. No modifica el stock.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if d.Status == entity.DeliveryStatusActive {
		uc.log.Warn().Str("delivery_id", id).Int64("quote_id", d.QuoteID).Msg("entrega activa eliminada sin reponer stock")
	}
	return nil
}
