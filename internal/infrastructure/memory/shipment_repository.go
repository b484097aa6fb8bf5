package memory

import (
	"context"
	"sort"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var (
	_ repository.ShipmentRepository = (*ShipmentRepo)(nil)
	_ repository.ShipmentTxRunner   = (*TxRunner)(nil)
)

// ShipmentRepo ShipmentRepository over a Store.
type ShipmentRepo struct {
	s *Store
}

func NewShipmentRepository(s *Store) *ShipmentRepo {
	return &ShipmentRepo{s: s}
}

func (r *ShipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	for _, existing := range r.s.shipments {
		if existing.TrackingNumber == sh.TrackingNumber {
			return domain.ErrDuplicate
		}
	}
	sh.ID = r.s.nextShipmentID
	r.s.nextShipmentID++
	r.s.shipments[sh.ID] = cloneShipment(*sh)
	return nil
}

func (r *ShipmentRepo) GetByID(_ context.Context, id int) (*entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	sh, ok := r.s.shipments[id]
	if !ok {
		return nil, nil
	}
	out := cloneShipment(sh)
	return &out, nil
}

// GetByIDForUpdate relies on TxRunner holding the store's tx lock.
func (r *ShipmentRepo) GetByIDForUpdate(ctx context.Context, id int) (*entity.Shipment, error) {
	return r.GetByID(ctx, id)
}

func (r *ShipmentRepo) GetByTrackingNumber(_ context.Context, trackingNumber string) (*entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	for _, sh := range r.s.shipments {
		if sh.TrackingNumber == trackingNumber {
			out := cloneShipment(sh)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ShipmentRepo) List(_ context.Context, status *entity.ShipmentStatus, page domain.Page) ([]*entity.Shipment, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	all := make([]*entity.Shipment, 0, len(r.s.shipments))
	for _, sh := range r.s.shipments {
		if status != nil && sh.Status != *status {
			continue
		}
		out := cloneShipment(sh)
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page.Offset(), page.Limit()), len(all), nil
}

func (r *ShipmentRepo) UpdateStatus(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	stored, ok := r.s.shipments[sh.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = sh.Status
	stored.ActualDelivery = sh.ActualDelivery
	r.s.shipments[sh.ID] = cloneShipment(stored)
	return nil
}

func (r *ShipmentRepo) CountByStatus(_ context.Context) (map[entity.ShipmentStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	counts := make(map[entity.ShipmentStatus]int)
	for _, sh := range r.s.shipments {
		counts[sh.Status]++
	}
	return counts, nil
}

// TxRunner runs shipment callbacks one at a time. When the callback fails,
// only the rows it wrote are put back; writes made outside the callback stay.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) RunShipments(_ context.Context, fn func(shipments repository.ShipmentRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	tx := &txShipmentRepo{ShipmentRepo: NewShipmentRepository(t.s), undo: make(map[int]*entity.Shipment)}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// txShipmentRepo records the prior state of every row it writes.
type txShipmentRepo struct {
	*ShipmentRepo
	undo map[int]*entity.Shipment // nil: the row did not exist before the tx
}

func (r *txShipmentRepo) Create(ctx context.Context, sh *entity.Shipment) error {
	if err := r.ShipmentRepo.Create(ctx, sh); err != nil {
		return err
	}
	if _, seen := r.undo[sh.ID]; !seen {
		r.undo[sh.ID] = nil
	}
	return nil
}

func (r *txShipmentRepo) UpdateStatus(ctx context.Context, sh *entity.Shipment) error {
	r.remember(sh.ID)
	return r.ShipmentRepo.UpdateStatus(ctx, sh)
}

func (r *txShipmentRepo) remember(id int) {
	if _, seen := r.undo[id]; seen {
		return
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if stored, ok := r.s.shipments[id]; ok {
		prior := cloneShipment(stored)
		r.undo[id] = &prior
	}
}

func (r *txShipmentRepo) rollback() {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, prior := range r.undo {
		if prior == nil {
			delete(r.s.shipments, id)
			continue
		}
		r.s.shipments[id] = *prior
	}
}

func cloneShipment(sh entity.Shipment) entity.Shipment {
	if sh.ActualDelivery != nil {
		t := *sh.ActualDelivery
		sh.ActualDelivery = &t
	}
	return sh
}
