package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DashboardStats — сводка для карточек, таблицы продавцов и графика выручки
type DashboardStats struct {
	TotalRevenue   decimal.Decimal     `json:"total_revenue"`
	MemberCount    int                 `json:"member_count"`
	GroupCount     int                 `json:"group_count"`
	OrderCount     int                 `json:"order_count"`
	TopVendors     []VendorStats       `json:"top_vendors"`
	MonthLabels    [12]string          `json:"month_labels"`
	MonthlyRevenue [12]decimal.Decimal `json:"monthly_revenue"`
}

// DashboardService считает сводную статистику по свежим данным бэкенда
type DashboardService struct {
	fetcher    Fetcher
	topVendors int
	loc        *time.Location
	log        *slog.Logger
}

// NewDashboardService создаёт сервис статистики
// topVendors — сколько лучших продавцов попадает в таблицу
func NewDashboardService(fetcher Fetcher, topVendors int, loc *time.Location, log *slog.Logger) *DashboardService {
	return &DashboardService{
		fetcher:    fetcher,
		topVendors: topVendors,
		loc:        loc,
		log:        log,
	}
}

// Stats параллельно загружает заказы, участников, группы и продавцов и считает сводку
// ошибка любой из этих коллекций прерывает загрузку целиком
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	const op = "service.DashboardService.Stats"
	log := s.log.With(slog.String("op", op))

	var (
		orders  []model.Order
		members []model.Member
		groups  []model.Group
		vendors []model.Member
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.fetcher.Orders(gctx)
		return err
	})
	g.Go(func() (err error) {
		members, err = s.fetcher.Members(gctx)
		return err
	})
	g.Go(func() (err error) {
		groups, err = s.fetcher.Groups(gctx)
		return err
	})
	g.Go(func() (err error) {
		vendors, err = s.fetcher.ActiveMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to load dashboard data", slog.String("error", err.Error()))
		return DashboardStats{}, fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}

	byVendor, err := s.vendorOrders(ctx, vendors)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("%s: %w", op, err)
	}
	vendorStats := PerVendorStats(byVendor, vendors)

	return DashboardStats{
		TotalRevenue:   TotalRevenue(orders),
		MemberCount:    len(members),
		GroupCount:     len(groups),
		OrderCount:     len(orders),
		TopVendors:     TopVendors(vendorStats, s.topVendors),
		MonthLabels:    MonthLabels,
		MonthlyRevenue: MonthlyRevenue(orders, s.loc),
	}, nil
}

// vendorOrders параллельно запрашивает заказы каждого продавца
// продавец, чьи заказы не удалось получить, остаётся с нулевой статистикой;
// ошибкой считается только отмена ctx
func (s *DashboardService) vendorOrders(ctx context.Context, vendors []model.Member) ([]model.Order, error) {
	lists := make([][]model.Order, len(vendors))

	g, gctx := errgroup.WithContext(ctx)
	for i, vendor := range vendors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			orders, err := s.fetcher.OrdersByVendor(gctx, vendor.ID)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.log.Warn("failed to fetch vendor orders",
					slog.String("vendor_id", vendor.ID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			// всё, что вернул эндпоинт продавца, засчитывается ему
			for j := range orders {
				orders[j].VendorID = vendor.ID
			}
			lists[i] = orders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Order
	for _, list := range lists {
		all = append(all, list...)
	}
	return all, nil
}
