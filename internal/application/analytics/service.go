package analytics

import (
	"context"
	"time"

	"github.com/shopstream/storefront/internal/domain"
)

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type SalesReader interface {
	SalesTotals(ctx context.Context) (sales int64, revenueCents int64, err error)
	DailySales(ctx context.Context, start, end time.Time) ([]domain.DailySales, error)
}

type Overview struct {
	Users        int64
	Products     int64
	Sales        int64
	RevenueCents int64
}

type Service struct {
	users    UserCounter
	products ProductCounter
	sales    SalesReader
	now      func() time.Time
}

func New(users UserCounter, products ProductCounter, sales SalesReader) *Service {
	return &Service{users: users, products: products, sales: sales, now: time.Now}
}

// WithNow overrides time for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Overview{}, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return Overview{}, err
	}
	sales, revenue, err := s.sales.SalesTotals(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Users: users, Products: products, Sales: sales, RevenueCents: revenue}, nil
}

// Daily returns the trailing seven days including today, one bucket per
// day, zero-filled where no orders landed.
func (s *Service) Daily(ctx context.Context) ([]domain.DailySales, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	rows, err := s.sales.DailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]domain.DailySales, len(rows))
	for _, r := range rows {
		byDay[r.Day.UTC().Format("2006-01-02")] = r
	}

	out := make([]domain.DailySales, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if r, ok := byDay[key]; ok {
			out = append(out, domain.DailySales{Day: d, Sales: r.Sales, RevenueCents: r.RevenueCents})
		} else {
			out = append(out, domain.DailySales{Day: d})
		}
	}
	return out, nil
}
