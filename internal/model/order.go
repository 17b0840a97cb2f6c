package model

import (
	"github.com/shopspring/decimal"
)

// Order представляет заказ (commande) в том виде, в каком его отдаёт бэкенд
// теги validate используются для проверки корректности данных при получении
type Order struct {
	ID          string          `json:"id" validate:"required"`
	ClientID    string          `json:"idClient" validate:"required"`
	VendorID    string          `json:"idVendeur" validate:"required"`
	OrderedAt   Timestamp       `json:"dateCommande" validate:"required"`
	TotalPrice  decimal.Decimal `json:"prixTotal" validate:"gte=0"`
	MaterialIDs []string        `json:"numerosSerie" validate:"dive,required"`
}

// Validate проверяет корректность структуры Order на основе тегов validate
func (o *Order) Validate() error {
	return validate.Struct(o)
}

// HasMaterial сообщает, встречается ли материал в заказе хотя бы один раз
func (o *Order) HasMaterial(materialID string) bool {
	for _, id := range o.MaterialIDs {
		if id == materialID {
			return true
		}
	}
	return false
}

// MaterialQuantities возвращает уникальные ID материалов в порядке первого появления
// и количество повторов каждого из них
func (o *Order) MaterialQuantities() ([]string, map[string]int) {
	ids := make([]string, 0, len(o.MaterialIDs))
	counts := make(map[string]int, len(o.MaterialIDs))
	for _, id := range o.MaterialIDs {
		if counts[id] == 0 {
			ids = append(ids, id)
		}
		counts[id]++
	}
	return ids, counts
}
