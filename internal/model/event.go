package model

import (
	"time"
)

// OrdersChanged — уведомление бэкенда о том, что коллекция заказов изменилась
// по нему сервис целиком перечитывает заказы
type OrdersChanged struct {
	Source    string    `json:"source" validate:"required"`
	OrderID   string    `json:"order_id,omitempty"`
	ChangedAt time.Time `json:"changed_at" validate:"required"`
}

// Validate проверяет корректность события на основе тегов validate
func (e *OrdersChanged) Validate() error {
	return validate.Struct(e)
}
