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

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

const deviceColumns = `id, name, model, monthly_price, purchase_date, status`

// DeviceRepo DeviceRepository over PostgreSQL (pool or tx).
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository builds the device adapter. Pass a pool or a tx.
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

// Create inserts the device and assigns its ID.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	query := `
		INSERT INTO devices (name, model, monthly_price, purchase_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, d.Name, d.Model, d.MonthlyPrice, d.PurchaseDate, int(d.Status)).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when absent.
func (r *DeviceRepo) GetByID(ctx context.Context, id int) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

// GetByName case-insensitive lookup.
func (r *DeviceRepo) GetByName(ctx context.Context, name string) (*entity.Device, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE lower(name) = lower($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device by name: %w", err)
	}
	return d, nil
}

// List returns the device count and one page ordered by id.
func (r *DeviceRepo) List(ctx context.Context, page domain.Page) ([]*entity.Device, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM devices`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count devices: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+deviceColumns+` FROM devices ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Device, 0, page.Limit())
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list devices rows: %w", err)
	}
	return list, total, nil
}

// UpdateStatus returns domain.ErrNotFound when no row matches.
func (r *DeviceRepo) UpdateStatus(ctx context.Context, id int, status entity.DeviceStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE devices SET status = $2 WHERE id = $1`, id, int(status))
	if err != nil {
		return fmt.Errorf("update device status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete relies on quotes.device_id ON DELETE RESTRICT to reject referenced devices.
func (r *DeviceRepo) Delete(ctx context.Context, id int) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete device: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeviceRepo) CountByStatus(ctx context.Context) (map[entity.DeviceStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM devices GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count devices by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.DeviceStatus]int, len(entity.DeviceStatuses()))
	for rows.Next() {
		var status, n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan device status count: %w", err)
		}
		counts[entity.DeviceStatus(status)] = n
	}
	return counts, rows.Err()
}

func (r *DeviceRepo) DeleteAll(ctx context.Context) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM devices`)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrInUse
		}
		return 0, fmt.Errorf("delete devices: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var (
		d      entity.Device
		status int
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Model, &d.MonthlyPrice, &d.PurchaseDate, &status); err != nil {
		return nil, err
	}
	d.Status = entity.DeviceStatus(status)
	d.PurchaseDate = d.PurchaseDate.UTC()
	return &d, nil
}
