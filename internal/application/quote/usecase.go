package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/inventory"
	"github.com/jhoicas/repuestos-api/internal/application/ports"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
	"github.com/jhoicas/repuestos-api/pkg/logger"
	"github.com/jhoicas/repuestos-api/pkg/metrics"
)

// Mensajes de validación mostrados al usuario.
const (
	MsgNoItems         = "Debe agregar al menos un artículo o servicio a la cotización."
	MsgNoSeller        = "Por favor, selecciona un vendedor."
	MsgUnknownSeller   = "El vendedor seleccionado no existe."
	MsgManualNoName    = "La descripción es obligatoria para artículos manuales."
	MsgInvalidQuantity = "La cantidad debe ser mayor que cero."
	MsgQuantityTooBig  = "La cantidad por artículo no puede superar 1.000.000 unidades."
	MsgInvalidPrice    = "El precio debe ser mayor que cero."
	MsgUnknownCurrency = "Moneda no soportada."
	MsgInvalidDate     = "La fecha debe tener el formato AAAA-MM-DD."
)

const lockTTL = 10 * time.Second

// MaxLineQuantity tope de unidades por línea, también después de unir líneas repetidas.
const MaxLineQuantity = 1_000_000

// Policy decisiones de negocio configurables del ciclo de vida.
type Policy struct {
	// AllowReapproval permite aprobar una cotización que no está pendiente. Cada aprobación
	// vuelve a descontar stock y crea otra entrega.
	AllowReapproval bool
	// RestoreStockOnDelete devuelve al inventario la entrega activa al eliminar una cotización aprobada.
	RestoreStockOnDelete bool
}

// Deps dependencias del caso de uso.
type Deps struct {
	TxRunner   inventory.TxRunner
	Ledger     *inventory.Ledger
	Quotes     repository.QuoteRepository
	Deliveries repository.DeliveryRepository
	Parts      repository.PartRepository
	Sellers    repository.SellerRepository
	Counter    repository.DocumentCounter
	Locker     ports.Locker
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

// UseCase ciclo de vida de la cotización: creación → aprobación (descuenta stock y crea la entrega)
// → devolución (repone stock). La aprobación y la devolución son atómicas.
type UseCase struct {
	txRunner   inventory.TxRunner
	ledger     *inventory.Ledger
	quotes     repository.QuoteRepository
	deliveries repository.DeliveryRepository
	parts      repository.PartRepository
	sellers    repository.SellerRepository
	counter    repository.DocumentCounter
	locker     ports.Locker
	policy     Policy
	log        *logger.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(deps Deps, policy Policy) *UseCase {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:   deps.TxRunner,
		ledger:     deps.Ledger,
		quotes:     deps.Quotes,
		deliveries: deps.Deliveries,
		parts:      deps.Parts,
		sellers:    deps.Sellers,
		counter:    deps.Counter,
		locker:     deps.Locker,
		policy:     policy,
		log:        log.Component("quotes"),
		metrics:    deps.Metrics,
		now:        time.Now,
	}
}

// Create valida y registra una cotización pendiente. El número se asigna solo si la validación pasa.
func (uc *UseCase) Create(ctx context.Context, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	items, err := uc.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if err := uc.checkSeller(ctx, in.SellerID); err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date, uc.now())
	if err != nil {
		return nil, err
	}
	paymentMethod, currency, err := normalizeTerms(in.PaymentMethod, in.Currency)
	if err != nil {
		return nil, err
	}

	id, err := uc.counter.Next(ctx, repository.CounterQuote)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	q := &entity.Quote{
		ID:            id,
		Client:        clientInfo(in),
		Date:          date,
		Items:         items,
		PaymentMethod: paymentMethod,
		Currency:      currency,
		SellerID:      in.SellerID,
		Status:        entity.QuoteStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	uc.metrics.QuoteTransition("create")
	uc.log.Info().Int64("quote_id", q.ID).Int("items", len(q.Items)).Msg("cotización creada")
	return dto.FromQuote(q), nil
}

// GetByID obtiene una cotización.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.QuoteResponse, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromQuote(q), nil
}

// List lista cotizaciones, más recientes primero.
func (uc *UseCase) List(ctx context.Context, in dto.QuoteListQuery) ([]dto.QuoteResponse, error) {
	list, err := uc.quotes.List(ctx, repository.QuoteFilter{
		Status:   entity.QuoteStatus(in.Status),
		SellerID: in.SellerID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *dto.FromQuote(q))
	}
	return out, nil
}

// Update edita una cotización pendiente. No toca el stock; la fecha original se conserva
// salvo que se envíe una nueva.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	if !q.IsPending() {
		return nil, fmt.Errorf("%w: solo se pueden editar cotizaciones pendientes", domain.ErrConflict)
	}
	items, err := uc.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if err := uc.checkSeller(ctx, in.SellerID); err != nil {
		return nil, err
	}
	if in.Date != "" {
		if q.Date, err = parseDate(in.Date, uc.now()); err != nil {
			return nil, err
		}
	}
	paymentMethod, currency, err := normalizeTerms(in.PaymentMethod, in.Currency)
	if err != nil {
		return nil, err
	}

	q.Client = clientInfo(in)
	q.Items = items
	q.PaymentMethod = paymentMethod
	q.Currency = currency
	q.SellerID = in.SellerID
	q.UpdatedAt = uc.now()
	if err := uc.quotes.Update(ctx, q); err != nil {
		return nil, err
	}
	uc.metrics.QuoteTransition("edit")
	return dto.FromQuote(q), nil
}

// Approve descuenta el stock de las líneas que no son servicio, crea la entrega activa y marca
// la cotización como aprobada, todo en una transacción.
func (uc *UseCase) Approve(ctx context.Context, id int64, userID string) (*dto.ApproveQuoteResponse, error) {
	release, err := uc.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		q   *entity.Quote
		del *entity.Delivery
	)
	err = uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		var err error
		q, err = repos.Quotes.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if !q.IsPending() && !uc.policy.AllowReapproval {
			return fmt.Errorf("%w: la cotización %d está %s", domain.ErrConflict, q.ID, q.Status)
		}

		if _, err := uc.ledger.AdjustTx(ctx, repos, inventory.AdjustInput{
			Items:     q.Items,
			Direction: inventory.Decrease,
			Reference: inventory.SaleReference(q.ID),
			UserID:    userID,
		}); err != nil {
			return err
		}

		now := uc.now()
		del = entity.NewDeliveryFromQuote(uuid.New().String(), q, now)
		if err := repos.Deliveries.Create(ctx, del); err != nil {
			return err
		}
		q.Status = entity.QuoteStatusApproved
		q.UpdatedAt = now
		return repos.Quotes.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.QuoteTransition("approve")
	uc.log.Info().
		Int64("quote_id", q.ID).
		Str("delivery_id", del.ID).
		Str("user_id", userID).
		Msg("cotización aprobada")
	return &dto.ApproveQuoteResponse{Quote: *dto.FromQuote(q), Delivery: *dto.FromDelivery(del)}, nil
}

// Return devuelve al inventario la entrega activa de la cotización y marca ambas como devueltas.
func (uc *UseCase) Return(ctx context.Context, id int64, userID string) (*dto.ReturnQuoteResponse, error) {
	release, err := uc.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		q   *entity.Quote
		del *entity.Delivery
	)
	err = uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		var err error
		q, err = repos.Quotes.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		del, err = repos.Deliveries.FindActiveByQuote(ctx, id)
		if err != nil {
			return err
		}
		if del == nil {
			return fmt.Errorf("%w: la cotización %d no tiene una entrega activa", domain.ErrConflict, id)
		}
		q, err = uc.returnTx(ctx, repos, del, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.QuoteTransition("return")
	uc.log.Info().Int64("quote_id", id).Str("delivery_id", del.ID).Msg("entrega devuelta al inventario")
	return &dto.ReturnQuoteResponse{Quote: *dto.FromQuote(q), Delivery: *dto.FromDelivery(del)}, nil
}

// ReturnDelivery devuelve una entrega identificada por su ID (vista de entregas).
func (uc *UseCase) ReturnDelivery(ctx context.Context, deliveryID, userID string) (*dto.DeliveryResponse, error) {
	current, err := uc.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	release, err := uc.lock(ctx, current.QuoteID)
	if err != nil {
		return nil, err
	}
	defer release()

	var del *entity.Delivery
	err = uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		var err error
		del, err = repos.Deliveries.GetForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if del == nil {
			return domain.ErrNotFound
		}
		if del.IsReturned() {
			return fmt.Errorf("%w: la entrega ya fue devuelta", domain.ErrConflict)
		}
		_, err = uc.returnTx(ctx, repos, del, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.QuoteTransition("return")
	uc.log.Info().Int64("quote_id", del.QuoteID).Str("delivery_id", del.ID).Msg("entrega devuelta al inventario")
	return dto.FromDelivery(del), nil
}

// Delete elimina la cotización. Por defecto no toca el stock, aunque esté aprobada; con
// RestoreStockOnDelete la entrega activa se devuelve antes de eliminar.
func (uc *UseCase) Delete(ctx context.Context, id int64, userID string) error {
	release, err := uc.lock(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	var status entity.QuoteStatus
	restored := false
	err = uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		q, err := repos.Quotes.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		status = q.Status
		if uc.policy.RestoreStockOnDelete && q.Status == entity.QuoteStatusApproved {
			del, err := repos.Deliveries.FindActiveByQuote(ctx, id)
			if err != nil {
				return err
			}
			if del != nil {
				if _, err := uc.returnTx(ctx, repos, del, userID); err != nil {
					return err
				}
				restored = true
			}
		}
		return repos.Quotes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	uc.metrics.QuoteTransition("delete")
	ev := uc.log.Info()
	if status == entity.QuoteStatusApproved && !restored {
		ev = uc.log.Warn()
	}
	ev.Int64("quote_id", id).
		Str("status", string(status)).
		Bool("stock_restored", restored).
		Msg("cotización eliminada")
	return nil
}

// returnTx repone el stock de la entrega, la marca devuelta y marca devuelta la cotización si existe.
func (uc *UseCase) returnTx(ctx context.Context, repos inventory.Repos, del *entity.Delivery, userID string) (*entity.Quote, error) {
	if _, err := uc.ledger.AdjustTx(ctx, repos, inventory.AdjustInput{
		Items:     del.Items,
		Direction: inventory.Increase,
		Reference: inventory.ReturnReference(del.ID),
		UserID:    userID,
	}); err != nil {
		return nil, err
	}
	now := uc.now()
	del.Status = entity.DeliveryStatusReturned
	del.ReturnedAt = &now
	if err := repos.Deliveries.UpdateStatus(ctx, del); err != nil {
		return nil, err
	}

	q, err := repos.Quotes.GetForUpdate(ctx, del.QuoteID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}
	q.Status = entity.QuoteStatusReturned
	q.UpdatedAt = now
	if err := repos.Quotes.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// lock serializa las transiciones de una misma cotización entre instancias.
func (uc *UseCase) lock(ctx context.Context, quoteID int64) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}
	l, err := uc.locker.Obtain(ctx, fmt.Sprintf("quote:%d", quoteID), lockTTL)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := l.Release(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warn().Err(err).Int64("quote_id", quoteID).Msg("no se pudo liberar el candado")
		}
	}, nil
}

// buildItems valida las líneas, resuelve los repuestos y une las líneas repetidas de
// un mismo repuesto y bodega sumando cantidades.
func (uc *UseCase) buildItems(ctx context.Context, in []dto.LineItemRequest) ([]entity.LineItem, error) {
	if len(in) == 0 {
		return nil, domain.Invalid(MsgNoItems)
	}
	items := make([]entity.LineItem, 0, len(in))
	index := make(map[string]int, len(in))
	stock := make(map[string]int, len(in))

	for _, req := range in {
		if req.Quantity <= 0 {
			return nil, domain.Invalid(MsgInvalidQuantity)
		}
		if req.Quantity > MaxLineQuantity {
			return nil, domain.Invalid(MsgQuantityTooBig)
		}
		if req.IsService {
			item, err := manualItem(req)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			continue
		}

		if req.ID == "" || req.WarehouseID == "" {
			return nil, domain.Invalid("Cada repuesto debe indicar id y bodega.")
		}
		part, err := uc.parts.GetByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if part == nil || part.WarehouseID != req.WarehouseID {
			return nil, domain.Invalid(fmt.Sprintf("El repuesto %s no existe en la bodega %s.", req.ID, req.WarehouseID))
		}
		price := part.Price
		if req.Price != nil {
			if !req.Price.IsPositive() {
				return nil, domain.Invalid(MsgInvalidPrice)
			}
			price = *req.Price
		}

		key := part.ID + "|" + part.WarehouseID
		if i, ok := index[key]; ok {
			// Ambos sumandos están acotados por MaxLineQuantity, la suma no desborda.
			if items[i].Quantity+req.Quantity > MaxLineQuantity {
				return nil, domain.Invalid(MsgQuantityTooBig)
			}
			items[i].Quantity += req.Quantity
			continue
		}
		index[key] = len(items)
		stock[key] = part.Stock
		items = append(items, entity.LineItem{
			ID:          part.ID,
			PartNumber:  part.PartNumber,
			Name:        part.Name,
			WarehouseID: part.WarehouseID,
			Quantity:    req.Quantity,
			Price:       price,
			Cost:        part.Cost,
		})
	}

	for _, it := range items {
		if it.IsService {
			continue
		}
		if available := stock[it.ID+"|"+it.WarehouseID]; it.Quantity > available {
			return nil, &domain.InsufficientStockError{
				PartID:      it.ID,
				WarehouseID: it.WarehouseID,
				Available:   available,
				Requested:   it.Quantity,
			}
		}
	}
	return items, nil
}

func (uc *UseCase) checkSeller(ctx context.Context, sellerID string) error {
	if strings.TrimSpace(sellerID) == "" {
		return domain.Invalid(MsgNoSeller)
	}
	seller, err := uc.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return err
	}
	if seller == nil {
		return domain.Invalid(MsgUnknownSeller)
	}
	return nil
}

// manualItem arma una línea de servicio o artículo manual; no afecta inventario.
func manualItem(req dto.LineItemRequest) (entity.LineItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return entity.LineItem{}, domain.Invalid(MsgManualNoName)
	}
	if req.Price == nil || !req.Price.IsPositive() {
		return entity.LineItem{}, domain.Invalid(MsgInvalidPrice)
	}
	id := req.ID
	if !strings.HasPrefix(id, entity.ManualItemPrefix) {
		id = entity.ManualItemPrefix + uuid.New().String()
	}
	return entity.LineItem{
		ID:          id,
		PartNumber:  entity.NotApplicable,
		Name:        name,
		WarehouseID: entity.NotApplicable,
		Quantity:    req.Quantity,
		Price:       *req.Price,
		IsService:   true,
	}, nil
}

func clientInfo(in dto.QuoteRequest) entity.ClientInfo {
	return entity.ClientInfo{
		Name:    strings.TrimSpace(in.Client),
		RIF:     strings.TrimSpace(in.RIF),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
}

func normalizeTerms(paymentMethod, currency string) (string, string, error) {
	if paymentMethod == "" {
		paymentMethod = entity.PaymentMethodCash
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return "", "", domain.Invalid("Forma de pago no soportada.")
	}
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	currency = strings.ToLower(currency)
	if !entity.ValidCurrency(currency) {
		return "", "", domain.Invalid(MsgUnknownCurrency)
	}
	return paymentMethod, currency, nil
}

// parseDate interpreta YYYY-MM-DD; vacío es la fecha de hoy.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.Invalid(MsgInvalidDate)
	}
	return t, nil
}
