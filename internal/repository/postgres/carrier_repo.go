package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
	"github.com/cpeacock1649-gif/layer-builder/internal/port"
)

type carrierRepo struct {
	db *sqlx.DB
}

// NewCarrierRepo creates a new PostgreSQL-backed CarrierRepository.
func NewCarrierRepo(db *sqlx.DB) port.CarrierRepository {
	return &carrierRepo{db: db}
}

func (r *carrierRepo) Create(ctx context.Context, entry *domain.CarrierEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO carriers (id, carrier_name, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.CarrierName, entry.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCarrier
		}
		return fmt.Errorf("carrierRepo.Create: %w", err)
	}
	return nil
}

func (r *carrierRepo) GetByName(ctx context.Context, name string) (*domain.CarrierEntry, error) {
	var entry domain.CarrierEntry
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM carriers WHERE carrier_name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("carrierRepo.GetByName: %w", err)
	}
	return &entry, nil
}

func (r *carrierRepo) List(ctx context.Context) ([]domain.CarrierEntry, error) {
	var entries []domain.CarrierEntry
	err := r.db.SelectContext(ctx, &entries, "SELECT * FROM carriers ORDER BY carrier_name ASC")
	if err != nil {
		return nil, fmt.Errorf("carrierRepo.List: %w", err)
	}
	return entries, nil
}

func (r *carrierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM carriers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("carrierRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
