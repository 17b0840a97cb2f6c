package service

import (
	"context"
	"strings"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"
)

// MatchField — поле заказа, в котором нашёлся поисковый терм; нужно для подсветки
type MatchField string

const (
	MatchID       MatchField = "id"
	MatchClient   MatchField = "client"
	MatchVendor   MatchField = "vendor"
	MatchPrice    MatchField = "price"
	MatchDate     MatchField = "date"
	MatchMaterial MatchField = "material"
)

// MatchedOrder — заказ, попавший в результаты полнотекстового поиска
type MatchedOrder struct {
	Order  model.Order  `json:"order"`
	Fields []MatchField `json:"match_fields"`
}

// Has сообщает, совпало ли поле
func (m MatchedOrder) Has(field MatchField) bool {
	for _, f := range m.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Lookup — доступ к уже разрешённым участникам и материалам только на чтение
type Lookup interface {
	LookupMember(id string) (model.Member, bool)
	LookupMaterial(id string) (model.Material, bool)
}

// Searcher выполняет полнотекстовый поиск по заказам и их связям
// сам ничего не загружает: ссылки должны быть разрешены заранее (Resolver.Prefetch),
// неразрешённая ссылка просто не совпадает
type Searcher struct {
	lookup Lookup
	loc    *time.Location
}

// NewSearcher создаёт Searcher; даты форматируются в часовом поясе loc
func NewSearcher(lookup Lookup, loc *time.Location) *Searcher {
	return &Searcher{lookup: lookup, loc: loc}
}

// NormalizeTerm приводит поисковый терм к виду, в котором он сравнивается
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// FormatDate форматирует дату как DD/MM/YYYY
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006")
}

// Search линейно просматривает заказы и возвращает те, у которых совпало хотя бы одно поле
// порядок результатов совпадает с порядком входных заказов
func (s *Searcher) Search(ctx context.Context, orders []model.Order, term string) ([]MatchedOrder, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return []MatchedOrder{}, nil
	}

	results := make([]MatchedOrder, 0)
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if fields := s.match(order, term); len(fields) > 0 {
			results = append(results, MatchedOrder{Order: order, Fields: fields})
		}
	}
	return results, nil
}

func (s *Searcher) match(order model.Order, term string) []MatchField {
	var fields []MatchField

	if strings.Contains(strings.ToLower(order.ID), term) {
		fields = append(fields, MatchID)
	}
	if s.memberMatches(order.ClientID, term) {
		fields = append(fields, MatchClient)
	}
	if s.memberMatches(order.VendorID, term) {
		fields = append(fields, MatchVendor)
	}
	if strings.Contains(order.TotalPrice.String(), term) {
		fields = append(fields, MatchPrice)
	}
	if strings.Contains(FormatDate(order.OrderedAt.In(s.loc), s.loc), term) {
		fields = append(fields, MatchDate)
	}
	if s.materialMatches(order, term) {
		fields = append(fields, MatchMaterial)
	}

	return fields
}

func (s *Searcher) memberMatches(id, term string) bool {
	member, ok := s.lookup.LookupMember(id)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(member.FullName()), term) ||
		strings.Contains(strings.ToLower(member.Email), term)
}

func (s *Searcher) materialMatches(order model.Order, term string) bool {
	ids, _ := order.MaterialQuantities()
	for _, id := range ids {
		material, ok := s.lookup.LookupMaterial(id)
		if !ok {
			continue
		}
		text := strings.ToLower(material.Brand + " " + material.Model + " " + material.Type)
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
