package service

import (
	"sort"
	"sync"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/google/uuid"
)

// Session — единственный владелец загруженных коллекций
// коллекция заказов заменяется целиком при каждой загрузке, по месту не меняется
type Session struct {
	mu         sync.RWMutex
	loaded     bool
	generation string
	orders     []model.Order
	members    []model.Member
	// участники загружены хотя бы раз, даже если список пуст
	membersLoaded bool
}

// NewSession создаёт пустую сессию
func NewSession() *Session {
	return &Session{}
}

// ReplaceOrders заменяет коллекцию заказов, сортируя её от новых к старым,
// и выдаёт новое поколение сессии
func (s *Session) ReplaceOrders(orders []model.Order) string {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderedAt.After(sorted[j].OrderedAt.Time)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = sorted
	s.loaded = true
	s.generation = uuid.NewString()
	return s.generation
}

// ReplaceMembers заменяет коллекцию участников
func (s *Session) ReplaceMembers(members []model.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
	s.membersLoaded = true
}

// MembersLoaded сообщает, была ли коллекция участников успешно загружена
func (s *Session) MembersLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.membersLoaded
}

// Snapshot возвращает текущие заказы и поколение
// срез не копируется: он никогда не меняется по месту
func (s *Session) Snapshot() ([]model.Order, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders, s.generation, s.loaded
}

// Members возвращает загруженных участников
func (s *Session) Members() []model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members
}

// FindOrder ищет заказ по ID
func (s *Session) FindOrder(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.ID == id {
			return order, true
		}
	}
	return model.Order{}, false
}
