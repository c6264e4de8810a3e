package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// AccountRepository defines the contract for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByName(ctx context.Context, name string) (*domain.Account, error)
	List(ctx context.Context, offset, limit int) ([]domain.Account, int, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProgramRepository defines the contract for program persistence. Each
// account holds at most one program record; Save upserts it.
type ProgramRepository interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*domain.ProgramRecord, error)
	Save(ctx context.Context, record *domain.ProgramRecord) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

// CarrierRepository defines the contract for the carrier reference list.
type CarrierRepository interface {
	Create(ctx context.Context, entry *domain.CarrierEntry) error
	GetByName(ctx context.Context, name string) (*domain.CarrierEntry, error)
	List(ctx context.Context) ([]domain.CarrierEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
