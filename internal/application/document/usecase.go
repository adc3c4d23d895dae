package document

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/repuestos-api/internal/application/dto"
	"github.com/jhoicas/repuestos-api/internal/application/ports"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/repository"
)

// Títulos impresos.
const (
	TitleQuote    = "COTIZACIÓN"
	TitleDelivery = "NOTA DE ENTREGA"
)

// UseCase genera la representación impresa de cotizaciones y notas de entrega.
type UseCase struct {
	quotes     repository.QuoteRepository
	deliveries repository.DeliveryRepository
	sellers    repository.SellerRepository
	warehouses repository.WarehouseRepository
	generator  ports.PDFGenerator
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	quotes repository.QuoteRepository,
	deliveries repository.DeliveryRepository,
	sellers repository.SellerRepository,
	warehouses repository.WarehouseRepository,
	generator ports.PDFGenerator,
) *UseCase {
	return &UseCase{
		quotes:     quotes,
		deliveries: deliveries,
		sellers:    sellers,
		warehouses: warehouses,
		generator:  generator,
	}
}

// QuotePDF devuelve el PDF de la cotización y el nombre de archivo sugerido.
// domain.ErrNotFound si la cotización no existe.
func (uc *UseCase) QuotePDF(ctx context.Context, id int64) ([]byte, string, error) {
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("documento: obtener cotización: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.build(ctx, TitleQuote, strconv.FormatInt(q.ID, 10), q.Date.Format(dto.DateLayout),
		string(q.Status), q.Client, q.SellerID, q.PaymentMethod, q.Currency, q.Items)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.Generate(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("documento: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("cotizacion_%d.pdf", q.ID), nil
}

// DeliveryPDF devuelve el PDF de la nota de entrega. El número impreso es el de la cotización.
func (uc *UseCase) DeliveryPDF(ctx context.Context, id string) ([]byte, string, error) {
	d, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("documento: obtener entrega: %w", err)
	}
	if d == nil {
		return nil, "", domain.ErrNotFound
	}
	status := "Activa"
	if d.IsReturned() {
		status = "Devuelta"
	}
	data, err := uc.build(ctx, TitleDelivery, strconv.FormatInt(d.QuoteID, 10), d.Date.Format(dto.DateLayout),
		status, d.Client, d.SellerID, d.PaymentMethod, d.Currency, d.Items)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.Generate(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("documento: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("nota_entrega_%d.pdf", d.QuoteID), nil
}

func (uc *UseCase) build(
	ctx context.Context,
	title, number, date, status string,
	client entity.ClientInfo,
	sellerID, paymentMethod, currency string,
	items []entity.LineItem,
) (ports.DocumentData, error) {
	sellerName := ""
	if sellerID != "" {
		s, err := uc.sellers.GetByID(ctx, sellerID)
		if err != nil {
			return ports.DocumentData{}, fmt.Errorf("documento: obtener vendedor: %w", err)
		}
		if s != nil {
			sellerName = s.Name
		}
	}
	names, err := uc.warehouseNames(ctx)
	if err != nil {
		return ports.DocumentData{}, err
	}
	lines := make([]ports.DocumentLine, 0, len(items))
	for _, it := range items {
		wh := names[it.WarehouseID]
		if it.IsService || wh == "" {
			wh = entity.NotApplicable
		}
		lines = append(lines, ports.DocumentLine{
			PartNumber: it.PartNumber,
			Name:       it.Name,
			Warehouse:  wh,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Total:      it.Total(),
		})
	}
	return ports.DocumentData{
		Title:          title,
		Number:         number,
		Date:           date,
		Status:         status,
		Client:         client.Name,
		RIF:            client.RIF,
		Phone:          client.Phone,
		Address:        client.Address,
		SellerName:     sellerName,
		PaymentMethod:  paymentLabel(paymentMethod),
		CurrencySymbol: entity.CurrencySymbol(currency),
		Lines:          lines,
		Total:          entity.SumItems(items),
	}, nil
}

func (uc *UseCase) warehouseNames(ctx context.Context) (map[string]string, error) {
	list, err := uc.warehouses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("documento: listar bodegas: %w", err)
	}
	out := make(map[string]string, len(list))
	for _, w := range list {
		out[w.ID] = w.Name
	}
	return out, nil
}

func paymentLabel(m string) string {
	if m == entity.PaymentMethodCredit {
		return "Crédito"
	}
	return "Contado"
}
