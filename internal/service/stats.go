package service

import (
	"sort"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// MonthLabels — подписи месяцев для графика выручки
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// VendorStats — итоги одного продавца
type VendorStats struct {
	VendorID   string          `json:"vendor_id"`
	Name       string          `json:"name"`
	OrderCount int             `json:"order_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// TotalRevenue — сумма prixTotal всех заказов, для пустого набора 0
func TotalRevenue(orders []model.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalPrice)
	}
	return total
}

// PerVendorStats считает количество и сумму заказов по каждому продавцу
// результат отсортирован по убыванию суммы, при равенстве сохраняется порядок vendors
// заказы продавцов, которых нет в vendors, не учитываются
func PerVendorStats(orders []model.Order, vendors []model.Member) []VendorStats {
	stats := make([]VendorStats, len(vendors))
	index := make(map[string]int, len(vendors))
	for i, vendor := range vendors {
		stats[i] = VendorStats{
			VendorID:   vendor.ID,
			Name:       vendor.FullName(),
			TotalValue: decimal.Zero,
		}
		if _, dup := index[vendor.ID]; !dup {
			index[vendor.ID] = i
		}
	}

	for _, order := range orders {
		i, ok := index[order.VendorID]
		if !ok {
			continue
		}
		stats[i].OrderCount++
		stats[i].TotalValue = stats[i].TotalValue.Add(order.TotalPrice)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalValue.GreaterThan(stats[j].TotalValue)
	})
	return stats
}

// TopVendors возвращает первые n записей уже отсортированной статистики
func TopVendors(stats []VendorStats, n int) []VendorStats {
	if n < 0 || n >= len(stats) {
		return stats
	}
	return stats[:n]
}

// MonthlyRevenue раскладывает выручку по 12 календарным месяцам (январь…декабрь)
// месяц берётся из даты самого заказа, годы складываются вместе
func MonthlyRevenue(orders []model.Order, loc *time.Location) [12]decimal.Decimal {
	var buckets [12]decimal.Decimal
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	for _, order := range orders {
		month := order.OrderedAt.In(loc).Month()
		buckets[month-1] = buckets[month-1].Add(order.TotalPrice)
	}
	return buckets
}
