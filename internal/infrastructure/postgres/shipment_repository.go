package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, tracking_number, customer_name, status, estimated_delivery, actual_delivery, destination, created_at`

// ShipmentRepo ShipmentRepository over PostgreSQL (pool or tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository builds the shipment adapter. Pass a pool or a tx.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create inserts the shipment. The unique index on tracking_number decides duplicates.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (tracking_number, customer_name, status, estimated_delivery, actual_delivery, destination, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.TrackingNumber, s.CustomerName, int(s.Status), s.EstimatedDelivery, s.ActualDelivery, s.Destination, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id int) (*entity.Shipment, error) {
	return r.getOne(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
}

// GetByIDForUpdate only locks when r runs inside a transaction.
func (r *ShipmentRepo) GetByIDForUpdate(ctx context.Context, id int) (*entity.Shipment, error) {
	return r.getOne(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1 FOR UPDATE`, id)
}

func (r *ShipmentRepo) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entity.Shipment, error) {
	return r.getOne(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE tracking_number = $1`, trackingNumber)
}

func (r *ShipmentRepo) getOne(ctx context.Context, query string, arg any) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

// List returns the total matching status and one page, newest first.
func (r *ShipmentRepo) List(ctx context.Context, status *entity.ShipmentStatus, page domain.Page) ([]*entity.Shipment, int, error) {
	where := ""
	args := []any{}
	if status != nil {
		where = ` WHERE status = $1`
		args = append(args, int(*status))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM shipments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shipments: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM shipments%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		shipmentColumns, where, n+1, n+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Shipment, 0, page.Limit())
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list shipments rows: %w", err)
	}
	return list, total, nil
}

// UpdateStatus writes status and actual delivery. domain.ErrNotFound when no row matches.
func (r *ShipmentRepo) UpdateStatus(ctx context.Context, s *entity.Shipment) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE shipments SET status = $2, actual_delivery = $3 WHERE id = $1`,
		s.ID, int(s.Status), s.ActualDelivery)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepo) CountByStatus(ctx context.Context) (map[entity.ShipmentStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM shipments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count shipments by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.ShipmentStatus]int, len(entity.ShipmentStatuses()))
	for rows.Next() {
		var status, n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan shipment status count: %w", err)
		}
		counts[entity.ShipmentStatus(status)] = n
	}
	return counts, rows.Err()
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var (
		s      entity.Shipment
		status int
	)
	err := row.Scan(&s.ID, &s.TrackingNumber, &s.CustomerName, &status,
		&s.EstimatedDelivery, &s.ActualDelivery, &s.Destination, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = entity.ShipmentStatus(status)
	s.EstimatedDelivery = s.EstimatedDelivery.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	if s.ActualDelivery != nil {
		t := s.ActualDelivery.UTC()
		s.ActualDelivery = &t
	}
	return &s, nil
}
