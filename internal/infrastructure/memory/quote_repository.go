package memory

import (
	"context"
	"sort"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo QuoteRepository over a Store. Reads attach a copy of the device.
type QuoteRepo struct {
	s *Store
}

func NewQuoteRepository(s *Store) *QuoteRepo {
	return &QuoteRepo{s: s}
}

func (r *QuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	if _, ok := r.s.devices[q.DeviceID]; !ok {
		return domain.Fail(domain.KindNotFound, "Device not found")
	}
	q.ID = r.s.nextQuoteID
	r.s.nextQuoteID++
	stored := *q
	stored.Device = nil
	r.s.quotes[q.ID] = stored
	return nil
}

func (r *QuoteRepo) GetByID(_ context.Context, id int) (*entity.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	q, ok := r.s.quotes[id]
	if !ok {
		return nil, nil
	}
	return r.withDevice(q), nil
}

func (r *QuoteRepo) List(_ context.Context, filter repository.QuoteFilter, page domain.Page) ([]*entity.Quote, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	all := make([]*entity.Quote, 0, len(r.s.quotes))
	for _, q := range r.s.quotes {
		if filter.SupportTier != nil && q.SupportTier != *filter.SupportTier {
			continue
		}
		all = append(all, r.withDevice(q))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page.Offset(), page.Limit()), len(all), nil
}

func (r *QuoteRepo) CountByTier(_ context.Context) (map[entity.SupportTier]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	counts := make(map[entity.SupportTier]int)
	for _, q := range r.s.quotes {
		counts[q.SupportTier]++
	}
	return counts, nil
}

func (r *QuoteRepo) DeleteAll(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	n := len(r.s.quotes)
	r.s.quotes = make(map[int]entity.Quote)
	return n, nil
}

// withDevice must be called with mu held.
func (r *QuoteRepo) withDevice(q entity.Quote) *entity.Quote {
	if d, ok := r.s.devices[q.DeviceID]; ok {
		q.Device = &d
	}
	return &q
}
