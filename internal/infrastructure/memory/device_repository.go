package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo DeviceRepository over a Store.
type DeviceRepo struct {
	s *Store
}

func NewDeviceRepository(s *Store) *DeviceRepo {
	return &DeviceRepo{s: s}
}

func (r *DeviceRepo) Create(_ context.Context, d *entity.Device) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	for _, existing := range r.s.devices {
		if strings.EqualFold(existing.Name, d.Name) {
			return domain.ErrDuplicate
		}
	}
	d.ID = r.s.nextDeviceID
	r.s.nextDeviceID++
	r.s.devices[d.ID] = *d
	return nil
}

func (r *DeviceRepo) GetByID(_ context.Context, id int) (*entity.Device, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	d, ok := r.s.devices[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DeviceRepo) GetByName(_ context.Context, name string) (*entity.Device, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	for _, d := range r.s.devices {
		if strings.EqualFold(d.Name, name) {
			return &d, nil
		}
	}
	return nil, nil
}

func (r *DeviceRepo) List(_ context.Context, page domain.Page) ([]*entity.Device, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	all := make([]*entity.Device, 0, len(r.s.devices))
	for _, d := range r.s.devices {
		all = append(all, &d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page.Offset(), page.Limit()), len(all), nil
}

func (r *DeviceRepo) UpdateStatus(_ context.Context, id int, status entity.DeviceStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	d, ok := r.s.devices[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	r.s.devices[id] = d
	return nil
}

func (r *DeviceRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	if _, ok := r.s.devices[id]; !ok {
		return domain.ErrNotFound
	}
	for _, q := range r.s.quotes {
		if q.DeviceID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.devices, id)
	return nil
}

func (r *DeviceRepo) CountByStatus(_ context.Context) (map[entity.DeviceStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	counts := make(map[entity.DeviceStatus]int)
	for _, d := range r.s.devices {
		counts[d.Status]++
	}
	return counts, nil
}

func (r *DeviceRepo) DeleteAll(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	if len(r.s.quotes) > 0 {
		return 0, domain.ErrInUse
	}
	n := len(r.s.devices)
	r.s.devices = make(map[int]entity.Device)
	return n, nil
}
