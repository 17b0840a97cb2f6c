package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// OrderView — строка таблицы результатов
type OrderView struct {
	ResolvedOrder
	Date        string       `json:"date"`
	Summary     string       `json:"summary"`
	MatchFields []MatchField `json:"match_fields,omitempty"`
}

// SearchResult — ответ на поиск
// Generation позволяет клиенту отбросить ответ, построенный на старой загрузке
type SearchResult struct {
	Generation string          `json:"generation"`
	FullText   bool            `json:"full_text"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Orders     []OrderView     `json:"orders"`
}

// OrderService инкапсулирует сессию дашборда: загрузку коллекций,
// разрешение связей, фильтры и полнотекстовый поиск
type OrderService struct {
	fetcher  Fetcher
	session  *Session
	resolver *Resolver
	searcher *Searcher
	members  EntityCache[model.Member]
	loc      *time.Location
	log      *slog.Logger
}

// NewOrderService создаёт новый экземпляр сервиса заказов
// он принимает интерфейсы, а не конкретные типы, для гибкости и тестируемости
func NewOrderService(
	fetcher Fetcher,
	members EntityCache[model.Member],
	materials EntityCache[model.Material],
	parallelism int,
	loc *time.Location,
	log *slog.Logger,
) *OrderService {
	resolver := NewResolver(fetcher, members, materials, parallelism)
	return &OrderService{
		fetcher:  fetcher,
		session:  NewSession(),
		resolver: resolver,
		searcher: NewSearcher(resolver, loc),
		members:  members,
		loc:      loc,
		log:      log,
	}
}

// Load выполняет первоначальную загрузку заказов и участников
// ошибки загрузки коллекций не подменяются заглушками, а возвращаются вызывающему
func (s *OrderService) Load(ctx context.Context) error {
	const op = "service.OrderService.Load"

	if err := s.ReloadOrders(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("initial data loaded", slog.String("op", op))
	return nil
}

// ReloadOrders целиком заменяет коллекцию заказов, кэши сущностей сохраняются
// участники перечитываются, только пока их ни разу не удалось загрузить
func (s *OrderService) ReloadOrders(ctx context.Context) error {
	const op = "service.OrderService.ReloadOrders"
	log := s.log.With(slog.String("op", op))

	orders, err := s.fetcher.Orders(ctx)
	if err != nil {
		log.Error("failed to load orders", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}

	generation := s.session.ReplaceOrders(orders)
	log.Info("orders loaded", slog.Int("orders_count", len(orders)), slog.String("generation", generation))

	if !s.session.MembersLoaded() {
		if err := s.loadMembers(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (s *OrderService) loadMembers(ctx context.Context) error {
	const op = "service.OrderService.loadMembers"
	log := s.log.With(slog.String("op", op))

	members, err := s.fetcher.Members(ctx)
	if err != nil {
		log.Error("failed to load members", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}
	s.session.ReplaceMembers(members)
	// участники сразу попадают в кэш, чтобы не запрашивать их по одному
	s.members.LoadAll(members)

	log.Info("members loaded", slog.Int("members_count", len(members)))
	return nil
}

// Search — единая точка входа поиска
// при непустом терме работает полнотекстовый поиск, иначе фильтр по категории
func (s *OrderService) Search(ctx context.Context, q model.SearchQuery) (SearchResult, error) {
	const op = "service.OrderService.Search"

	if err := q.Validate(); err != nil {
		return SearchResult{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidQuery, err)
	}

	orders, generation, loaded := s.session.Snapshot()
	if !loaded {
		return SearchResult{}, fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	dates, err := ParseDateRange(q.Start, q.End, s.loc)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	var views []OrderView
	term := NormalizeTerm(q.Term)
	if term != "" {
		views, err = s.fullTextSearch(ctx, FilterByDateRange(orders, dates), term)
	} else {
		views, err = s.categorySearch(ctx, orders, dates, q.Category, q.Value)
	}
	if err != nil {
		return SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	total := decimal.Zero
	for _, view := range views {
		total = total.Add(view.Order.TotalPrice)
	}

	return SearchResult{
		Generation: generation,
		FullText:   term != "",
		Count:      len(views),
		Total:      total,
		Orders:     views,
	}, nil
}

func (s *OrderService) categorySearch(ctx context.Context, orders []model.Order, dates DateRange, rawCategory, value string) ([]OrderView, error) {
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(orders, dates, category, strings.TrimSpace(value))
	if err := s.resolver.Prefetch(ctx, filtered); err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(filtered))
	for _, order := range filtered {
		views = append(views, s.view(s.resolver.ResolveOrder(ctx, order), nil))
	}
	return views, nil
}

func (s *OrderService) fullTextSearch(ctx context.Context, orders []model.Order, term string) ([]OrderView, error) {
	// все связи разрешаются заранее и параллельно, сам поиск в сеть не ходит
	if err := s.resolver.Prefetch(ctx, orders); err != nil {
		return nil, err
	}

	matches, err := s.searcher.Search(ctx, orders, term)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(matches))
	for _, match := range matches {
		views = append(views, s.view(s.resolver.ResolveOrder(ctx, match.Order), match.Fields))
	}
	return views, nil
}

func (s *OrderService) view(resolved ResolvedOrder, fields []MatchField) OrderView {
	return OrderView{
		ResolvedOrder: resolved,
		Date:          resolved.Order.OrderedAt.In(s.loc).Format("02/01/2006 15:04"),
		Summary:       resolved.Summary(),
		MatchFields:   fields,
	}
}

// OrderDetails возвращает заказ со всеми разрешёнными связями
func (s *OrderService) OrderDetails(ctx context.Context, id string) (OrderView, error) {
	const op = "service.OrderService.OrderDetails"
	log := s.log.With(slog.String("op", op), slog.String("order_id", id))

	if _, _, loaded := s.session.Snapshot(); !loaded {
		return OrderView{}, fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	order, found := s.session.FindOrder(id)
	if !found {
		log.Debug("order not found in session")
		return OrderView{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
	}

	return s.view(s.resolver.ResolveOrder(ctx, order), nil), nil
}

// MemberOptions возвращает участников указанного типа, отсортированных по фамилии и имени
func (s *OrderService) MemberOptions(memberType model.MemberType) []model.Member {
	var options []model.Member
	for _, member := range s.session.Members() {
		if member.Type == memberType {
			options = append(options, member)
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].LastName != options[j].LastName {
			return options[i].LastName < options[j].LastName
		}
		return options[i].FirstName < options[j].FirstName
	})
	return options
}

// MaterialOptions возвращает все материалы из загруженных заказов,
// отсортированные по марке и модели
func (s *OrderService) MaterialOptions(ctx context.Context) ([]model.Material, error) {
	const op = "service.OrderService.MaterialOptions"

	orders, _, loaded := s.session.Snapshot()
	if !loaded {
		return nil, fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}

	if err := s.resolver.Prefetch(ctx, orders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{})
	var options []model.Material
	for _, order := range orders {
		for _, id := range order.MaterialIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if material, ok := s.resolver.LookupMaterial(id); ok {
				options = append(options, material)
			}
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Brand != options[j].Brand {
			return options[i].Brand < options[j].Brand
		}
		return options[i].Model < options[j].Model
	})
	return options, nil
}
