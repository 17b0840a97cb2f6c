package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/asquebay/order-dashboard/internal/model"

	"golang.org/x/sync/singleflight"
)

// EntityCache — потокобезопасный in-memory кэш сущностей по ID
// записи живут всю сессию: не вытесняются и не инвалидируются
type EntityCache[T any] struct {
	// sync.Map выбрал для обеспечения потокобезопасности
	// Ключ — string (ID сущности), значение — T
	storage sync.Map
	// не больше одного запроса в полёте на каждый ID
	inflight singleflight.Group

	name     string
	key      func(T) string
	fallback func(id string) T
	log      *slog.Logger
}

// New создаёт кэш
// key извлекает ID из сущности, fallback строит заглушку для ID, который не удалось загрузить
func New[T any](name string, key func(T) string, fallback func(id string) T, log *slog.Logger) *EntityCache[T] {
	return &EntityCache[T]{
		name:     name,
		key:      key,
		fallback: fallback,
		log:      log.With(slog.String("cache", name)),
	}
}

// NewMemberCache создаёт кэш участников с заглушкой "Inconnu"
func NewMemberCache(log *slog.Logger) *EntityCache[model.Member] {
	return New("member", func(m model.Member) string { return m.ID }, model.UnknownMember, log)
}

// NewMaterialCache создаёт кэш материалов с заглушкой "Inconnu" и нулевой ценой
func NewMaterialCache(log *slog.Logger) *EntityCache[model.Material] {
	return New("material", func(m model.Material) string { return m.ID }, model.UnknownMaterial, log)
}

// Put добавляет или обновляет сущность в кэше
func (c *EntityCache[T]) Put(id string, entity T) {
	c.storage.Store(id, entity)
}

// Get извлекает сущность из кэша по её ID
// возвращает сущность и true, если она найдена, иначе — нулевое значение и false
func (c *EntityCache[T]) Get(id string) (T, bool) {
	value, ok := c.storage.Load(id)
	if !ok {
		var zero T
		return zero, false
	}

	// выполняем безопасное приведение типа
	entity, ok := value.(T)
	return entity, ok
}

// Has сообщает, есть ли в кэше запись (в том числе заглушка) для ID
func (c *EntityCache[T]) Has(id string) bool {
	_, ok := c.storage.Load(id)
	return ok
}

// LoadAll загружает в кэш срез сущностей
// используется для массового заполнения после загрузки коллекции
func (c *EntityCache[T]) LoadAll(entities []T) {
	for _, entity := range entities {
		c.Put(c.key(entity), entity)
	}
}

// Len возвращает количество записей
func (c *EntityCache[T]) Len() int {
	n := 0
	c.storage.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Values возвращает все записи в произвольном порядке
func (c *EntityCache[T]) Values() []T {
	var values []T
	c.storage.Range(func(_, value any) bool {
		if entity, ok := value.(T); ok {
			values = append(values, entity)
		}
		return true
	})
	return values
}

// Resolve возвращает сущность из кэша, а при промахе загружает её через fetch
// конкурентные вызовы для одного ID делят один запрос
// ошибка загрузки навсегда кэширует заглушку, повторных запросов за этот ID не будет
func (c *EntityCache[T]) Resolve(ctx context.Context, id string, fetch func(ctx context.Context, id string) (T, error)) T {
	if entity, ok := c.Get(id); ok {
		return entity
	}

	ch := c.inflight.DoChan(id, func() (any, error) {
		// запись могла появиться, пока мы шли сюда мимо кэша
		if entity, ok := c.Get(id); ok {
			return entity, nil
		}

		// запрос общий для всех ожидающих, поэтому отмена одного вызывающего его не прерывает
		entity, err := fetch(context.WithoutCancel(ctx), id)
		if err != nil {
			c.log.Warn("failed to fetch entity, caching placeholder",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
			entity = c.fallback(id)
		}
		c.Put(id, entity)
		return entity, nil
	})

	select {
	case res := <-ch:
		entity, _ := res.Val.(T)
		return entity
	case <-ctx.Done():
		// вызывающий ушёл раньше; заглушку отдаём, но не сохраняем
		return c.fallback(id)
	}
}
