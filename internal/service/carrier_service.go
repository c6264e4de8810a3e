package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
	"github.com/cpeacock1649-gif/layer-builder/internal/port"
)

// CarrierService manages the carrier reference list that seeds manual-entry
// dropdowns.
type CarrierService interface {
	Add(ctx context.Context, name string) (*domain.CarrierEntry, error)
	List(ctx context.Context) ([]domain.CarrierEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type carrierService struct {
	carrierRepo port.CarrierRepository
}

// NewCarrierService creates a new CarrierService implementation.
func NewCarrierService(carrierRepo port.CarrierRepository) CarrierService {
	return &carrierService{carrierRepo: carrierRepo}
}

func (s *carrierService) Add(ctx context.Context, name string) (*domain.CarrierEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("carrier.Add: empty name: %w", domain.ErrInvalidInput)
	}
	entry := &domain.CarrierEntry{CarrierName: name}
	if err := s.carrierRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *carrierService) List(ctx context.Context) ([]domain.CarrierEntry, error) {
	return s.carrierRepo.List(ctx)
}

func (s *carrierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.carrierRepo.Delete(ctx, id)
}
