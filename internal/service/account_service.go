package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
	"github.com/cpeacock1649-gif/layer-builder/internal/port"
)

// AccountService defines the account management contract.
type AccountService interface {
	Create(ctx context.Context, name string) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context, offset, limit int) ([]domain.Account, int, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clone(ctx context.Context, sourceID uuid.UUID, newName string) (*domain.Account, error)
}

type accountService struct {
	accountRepo port.AccountRepository
	programRepo port.ProgramRepository
}

// NewAccountService creates a new AccountService implementation.
func NewAccountService(accountRepo port.AccountRepository, programRepo port.ProgramRepository) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		programRepo: programRepo,
	}
}

func (s *accountService) Create(ctx context.Context, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account.Create: empty name: %w", domain.ErrInvalidInput)
	}
	account := &domain.Account{Name: name}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	log.Printf("accountService.Create: created account %s (%s)", account.Name, account.ID)
	return account, nil
}

func (s *accountService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

func (s *accountService) List(ctx context.Context, offset, limit int) ([]domain.Account, int, error) {
	return s.accountRepo.List(ctx, offset, limit)
}

func (s *accountService) Rename(ctx context.Context, id uuid.UUID, name string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Name = strings.TrimSpace(name)
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete removes the account along with its program and file metadata
// (cascaded by the schema).
func (s *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	log.Printf("accountService.Delete: deleting account %s", id)
	return s.accountRepo.Delete(ctx, id)
}

// Clone creates a new account carrying a copy of the source account's
// program. Uploaded file history is not cloned, only the assembled
// structure.
func (s *accountService) Clone(ctx context.Context, sourceID uuid.UUID, newName string) (*domain.Account, error) {
	source, err := s.accountRepo.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	clone := &domain.Account{Name: strings.TrimSpace(newName)}
	if err := s.accountRepo.Create(ctx, clone); err != nil {
		return nil, err
	}

	record, err := s.programRepo.GetByAccount(ctx, sourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Source has no program yet; the clone starts empty.
			return clone, nil
		}
		return nil, fmt.Errorf("account.Clone: %w", err)
	}

	copied := &domain.ProgramRecord{
		AccountID:   clone.ID,
		ProgramData: record.ProgramData,
	}
	if err := s.programRepo.Save(ctx, copied); err != nil {
		return nil, fmt.Errorf("account.Clone: %w", err)
	}

	log.Printf("accountService.Clone: cloned account %s (%s) into %s (%s)",
		source.Name, source.ID, clone.Name, clone.ID)
	return clone, nil
}
