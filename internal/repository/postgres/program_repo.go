package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
	"github.com/cpeacock1649-gif/layer-builder/internal/port"
)

type programRepo struct {
	db *sqlx.DB
}

// NewProgramRepo creates a new PostgreSQL-backed ProgramRepository.
func NewProgramRepo(db *sqlx.DB) port.ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) GetByAccount(ctx context.Context, accountID uuid.UUID) (*domain.ProgramRecord, error) {
	var record domain.ProgramRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM programs WHERE account_id = $1", accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("programRepo.GetByAccount: %w", err)
	}
	return &record, nil
}

// Save upserts the account's program record. The program_data column is
// JSONB, keyed uniquely by account.
func (r *programRepo) Save(ctx context.Context, record *domain.ProgramRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO programs (id, account_id, program_data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id)
		DO UPDATE SET program_data = EXCLUDED.program_data, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.AccountID, record.ProgramData, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("programRepo.Save: %w", err)
	}
	return nil
}

func (r *programRepo) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM programs WHERE account_id = $1", accountID)
	if err != nil {
		return fmt.Errorf("programRepo.DeleteByAccount: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
