package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"
)

const dateLayout = "2006-01-02"

// DateRange — включительный диапазон дат; нулевая граница означает "без ограничения"
type DateRange struct {
	From time.Time
	To   time.Time
	// пояс, в котором сравниваются даты заказов без часового пояса, по умолчанию UTC
	Location *time.Location
}

// ParseDateRange разбирает границы в формате YYYY-MM-DD в часовом поясе loc
// конец диапазона растягивается до 23:59:59.999, чтобы заказы последнего дня попадали в выборку
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	const op = "service.ParseDateRange"

	r := DateRange{Location: loc}
	if start = strings.TrimSpace(start); start != "" {
		from, err := time.ParseInLocation(dateLayout, start, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("%s: %w: start date %q", op, ErrInvalidQuery, start)
		}
		r.From = from
	}
	if end = strings.TrimSpace(end); end != "" {
		to, err := time.ParseInLocation(dateLayout, end, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("%s: %w: end date %q", op, ErrInvalidQuery, end)
		}
		r.To = EndOfDay(to)
	}
	return r, nil
}

// EndOfDay возвращает 23:59:59.999 того же дня
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Contains проверяет попадание момента в диапазон, границы включены
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

func (r DateRange) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// FilterByDateRange оставляет заказы, дата которых попадает в диапазон
// порядок заказов сохраняется
func FilterByDateRange(orders []model.Order, r DateRange) []model.Order {
	loc := r.location()
	filtered := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if r.Contains(order.OrderedAt.In(loc)) {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// Category — поле, по которому фильтруются заказы в режиме выпадающего списка
type Category string

const (
	CategoryNone     Category = ""
	CategoryClient   Category = "client"
	CategoryVendor   Category = "actif"
	CategoryMaterial Category = "materiel"
)

// ParseCategory принимает значения селектора дашборда и их английские синонимы
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "all":
		return CategoryNone, nil
	case "client":
		return CategoryClient, nil
	case "actif", "vendor", "vendeur":
		return CategoryVendor, nil
	case "materiel", "material":
		return CategoryMaterial, nil
	}
	return CategoryNone, fmt.Errorf("service.ParseCategory: %w: %q", ErrInvalidCategory, s)
}

// FilterByCategory оставляет заказы с точным совпадением ID клиента или продавца,
// либо заказы, в которых встречается материал
// пустое значение или CategoryNone ничего не фильтруют
func FilterByCategory(orders []model.Order, category Category, value string) []model.Order {
	if category == CategoryNone || value == "" {
		return orders
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		var match bool
		switch category {
		case CategoryClient:
			match = order.ClientID == value
		case CategoryVendor:
			match = order.VendorID == value
		case CategoryMaterial:
			match = order.HasMaterial(value)
		}
		if match {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// ApplyFilters сначала фильтрует по датам, затем по категории (семантика AND)
func ApplyFilters(orders []model.Order, r DateRange, category Category, value string) []model.Order {
	return FilterByCategory(FilterByDateRange(orders, r), category, value)
}
