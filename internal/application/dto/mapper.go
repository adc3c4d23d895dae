package dto

import (
	"github.com/jhoicas/repuestos-api/internal/domain/entity"
	"github.com/jhoicas/repuestos-api/internal/domain/policy"
)

// FromLineItems convierte líneas de dominio a su salida con total por línea.
func FromLineItems(items []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			ID:          it.ID,
			PartNumber:  it.PartNumber,
			Name:        it.Name,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Cost:        it.Cost,
			Total:       it.Total(),
			IsService:   it.IsService,
		})
	}
	return out
}

// FromQuote convierte una cotización a su salida HTTP.
func FromQuote(q *entity.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}
	return &QuoteResponse{
		ID:            q.ID,
		Client:        q.Client.Name,
		RIF:           q.Client.RIF,
		Phone:         q.Client.Phone,
		Address:       q.Client.Address,
		Date:          q.Date.Format(DateLayout),
		Items:         FromLineItems(q.Items),
		PaymentMethod: q.PaymentMethod,
		Currency:      q.Currency,
		SellerID:      q.SellerID,
		Status:        string(q.Status),
		Total:         q.Total(),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

// FromDelivery convierte una entrega a su salida HTTP.
func FromDelivery(d *entity.Delivery) *DeliveryResponse {
	if d == nil {
		return nil
	}
	return &DeliveryResponse{
		ID:            d.ID,
		QuoteID:       d.QuoteID,
		Client:        d.Client.Name,
		RIF:           d.Client.RIF,
		Phone:         d.Client.Phone,
		Address:       d.Client.Address,
		Date:          d.Date.Format(DateLayout),
		Items:         FromLineItems(d.Items),
		PaymentMethod: d.PaymentMethod,
		Currency:      d.Currency,
		SellerID:      d.SellerID,
		Status:        string(d.Status),
		Total:         d.Total(),
		ApprovedAt:    d.ApprovedAt,
		ReturnedAt:    d.ReturnedAt,
	}
}

// FromPart convierte un repuesto a su salida HTTP.
func FromPart(p *entity.Part) *PartResponse {
	if p == nil {
		return nil
	}
	models := p.CompatibleModels
	if models == nil {
		models = []string{}
	}
	return &PartResponse{
		ID:               p.ID,
		PartNumber:       p.PartNumber,
		Name:             p.Name,
		Brand:            p.Brand,
		Model:            p.Model,
		CompatibleModels: models,
		Price:            p.Price,
		Cost:             p.Cost,
		Stock:            p.Stock,
		MinStock:         p.MinStock,
		LowStock:         p.IsLowStock(),
		Location:         p.Location,
		WarehouseID:      p.WarehouseID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// FromUser convierte un usuario a su salida HTTP (sin hash de contraseña).
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		Permissions: policy.Strings(u.Capabilities),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
