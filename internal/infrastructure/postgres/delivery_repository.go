package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, quote_id, client_name, client_rif, client_phone, client_address, date, items, payment_method, currency, seller_id, status, approved_at, returned_at`

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la entrega generada por la aprobación.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	items, err := encodeItems(d.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(ctx, query,
		d.ID, d.QuoteID, d.Client.Name, d.Client.RIF, d.Client.Phone, d.Client.Address,
		d.Date, items, d.PaymentMethod, d.Currency, nullableString(d.SellerID),
		string(d.Status), d.ApprovedAt, d.ReturnedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega. nil, nil si no existe.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.get(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id)
}

// GetForUpdate obtiene la entrega y bloquea la fila.
func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.get(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id)
}

// FindActiveByQuote devuelve la entrega activa más reciente de la cotización.
func (r *DeliveryRepo) FindActiveByQuote(ctx context.Context, quoteID int64) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
		WHERE quote_id = $1 AND status = $2 ORDER BY approved_at DESC LIMIT 1 FOR UPDATE`
	return r.get(ctx, query, quoteID, string(entity.DeliveryStatusActive))
}

func (r *DeliveryRepo) get(ctx context.Context, query string, args ...any) (*entity.Delivery, error) {
	d, err := scanDelivery(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// UpdateStatus actualiza estado y fecha de devolución; las líneas no cambian.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, d *entity.Delivery) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE deliveries SET status = $2, returned_at = $3 WHERE id = $1`,
		d.ID, string(d.Status), d.ReturnedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las entregas, más recientes primero.
func (r *DeliveryRepo) List(ctx context.Context) ([]*entity.Delivery, error) {
	rows, err := r.q.Query(ctx, `SELECT `+deliveryColumns+` FROM deliveries ORDER BY approved_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete elimina una entrega sin tocar el inventario.
func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM deliveries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var (
		d        entity.Delivery
		items    []byte
		sellerID *string
		status   string
	)
	err := row.Scan(
		&d.ID, &d.QuoteID, &d.Client.Name, &d.Client.RIF, &d.Client.Phone, &d.Client.Address,
		&d.Date, &items, &d.PaymentMethod, &d.Currency, &sellerID, &status,
		&d.ApprovedAt, &d.ReturnedAt,
	)
	if err != nil {
		return nil, err
	}
	if sellerID != nil {
		d.SellerID = *sellerID
	}
	d.Status = entity.DeliveryStatus(status)
	if d.Items, err = decodeItems(items); err != nil {
		return nil, err
	}
	return &d, nil
}
