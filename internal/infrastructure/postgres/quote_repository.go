package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

const quoteColumns = `id, client_name, client_rif, client_phone, client_address, date, items, payment_method, currency, seller_id, status, created_at, updated_at`

// QuoteRepo implementación del puerto QuoteRepository sobre PostgreSQL. Las líneas se guardan en JSONB.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create persiste una cotización; el ID lo asigna el contador de documentos.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	items, err := encodeItems(quote.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		quote.ID, quote.Client.Name, quote.Client.RIF, quote.Client.Phone, quote.Client.Address,
		quote.Date, items, quote.PaymentMethod, quote.Currency, nullableString(quote.SellerID),
		string(quote.Status), quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización. nil, nil si no existe.
func (r *QuoteRepo) GetByID(ctx context.Context, id int64) (*entity.Quote, error) {
	return r.get(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
}

// GetForUpdate obtiene la cotización y bloquea la fila (SELECT FOR UPDATE).
func (r *QuoteRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Quote, error) {
	return r.get(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1 FOR UPDATE`, id)
}

func (r *QuoteRepo) get(ctx context.Context, query string, id int64) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// Update reemplaza datos, líneas y estado de la cotización.
func (r *QuoteRepo) Update(ctx context.Context, quote *entity.Quote) error {
	items, err := encodeItems(quote.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE quotes SET client_name = $2, client_rif = $3, client_phone = $4, client_address = $5,
			date = $6, items = $7, payment_method = $8, currency = $9, seller_id = $10, status = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		quote.ID, quote.Client.Name, quote.Client.RIF, quote.Client.Phone, quote.Client.Address,
		quote.Date, items, quote.PaymentMethod, quote.Currency, nullableString(quote.SellerID),
		string(quote.Status), quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las cotizaciones filtradas, más recientes primero.
func (r *QuoteRepo) List(ctx context.Context, filter repository.QuoteFilter) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
	var args []any
	pos := 1
	if filter.Status != "" {
		query += ` AND status = $` + strconv.Itoa(pos)
		args = append(args, string(filter.Status))
		pos++
	}
	if filter.SellerID != "" {
		query += ` AND seller_id = $` + strconv.Itoa(pos)
		args = append(args, filter.SellerID)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Delete elimina una cotización.
func (r *QuoteRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var (
		q        entity.Quote
		items    []byte
		sellerID *string
		status   string
	)
	err := row.Scan(
		&q.ID, &q.Client.Name, &q.Client.RIF, &q.Client.Phone, &q.Client.Address,
		&q.Date, &items, &q.PaymentMethod, &q.Currency, &sellerID, &status,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sellerID != nil {
		q.SellerID = *sellerID
	}
	q.Status = entity.QuoteStatus(status)
	if q.Items, err = decodeItems(items); err != nil {
		return nil, err
	}
	return &q, nil
}
