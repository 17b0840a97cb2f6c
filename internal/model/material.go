package model

import (
	"github.com/shopspring/decimal"
)

// Material — тип материала, который можно арендовать или продать
type Material struct {
	ID    string          `json:"id" validate:"required"`
	Brand string          `json:"marque"`
	Model string          `json:"modele"`
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"prix" validate:"gte=0"`
}

// Validate проверяет корректность структуры Material на основе тегов validate
func (m *Material) Validate() error {
	return validate.Struct(m)
}

// Label — подпись для выпадающего списка: "Bosch X1 (Perceuse)"
func (m Material) Label() string {
	return m.Brand + " " + m.Model + " (" + m.Type + ")"
}

// UnknownMaterial создаёт заглушку с нулевой ценой для материала,
// запрос которого завершился ошибкой
func UnknownMaterial(id string) Material {
	return Material{
		ID:    id,
		Brand: Unknown,
		Model: Unknown,
		Type:  "INCONNU",
		Price: decimal.Zero,
	}
}
