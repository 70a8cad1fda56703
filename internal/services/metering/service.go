package metering

import (
	"context"
	"log/slog"

	"gameledger/internal/model"
	"gameledger/internal/services/access"
	"gameledger/internal/storage"
)

// Meter exposes the storage footprint the host charges callers for.
// On hosts without byte accounting, NullMeter keeps the settlement
// control flow intact with a permanently zero footprint.
type Meter interface {
	StorageBytes(ctx context.Context) (int64, error)
}

// StorageMeter reads the footprint tracked by the storage backend
type StorageMeter struct {
	storage storage.Storage
}

// NewStorageMeter creates a meter backed by the given storage
func NewStorageMeter(store storage.Storage) *StorageMeter {
	return &StorageMeter{storage: store}
}

var _ Meter = (*StorageMeter)(nil)

// StorageBytes returns the bytes the ledger currently occupies
func (m *StorageMeter) StorageBytes(ctx context.Context) (int64, error) {
	return m.storage.StorageBytes(ctx)
}

// NullMeter reports a zero footprint. Placeholder for hosts that do not
// charge for storage; settlement still runs so the charge/refund/abort
// path stays auditable.
type NullMeter struct{}

var _ Meter = (*NullMeter)(nil)

// StorageBytes always returns zero
func (m *NullMeter) StorageBytes(ctx context.Context) (int64, error) {
	return 0, nil
}

// Settlement is the outcome of charging one call for its storage delta
type Settlement struct {
	Delta    int64
	Required uint64
	Refund   uint64
}

// Service computes storage charges and manages the configured price.
// The price itself is host-level configuration: it is not derived from
// anything the ledger stores, only kept so calls can be settled.
type Service struct {
	storage      storage.Storage
	access       *access.Service
	defaultPrice uint64
	logger       *slog.Logger
}

// New creates a new metering service. The default price applies until
// the owner configures one.
func New(store storage.Storage, accessService *access.Service, defaultPrice uint64, logger *slog.Logger) *Service {
	return &Service{
		storage:      store,
		access:       accessService,
		defaultPrice: defaultPrice,
		logger:       logger,
	}
}

// PricePerByte returns the configured price, or the default if unset
func (s *Service) PricePerByte(ctx context.Context) (uint64, error) {
	price, ok, err := s.storage.GetStoragePrice(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.defaultPrice, nil
	}
	return price, nil
}

// SetPricePerByte updates the configured price. Owner only.
func (s *Service) SetPricePerByte(ctx context.Context, caller model.AccountID, price uint64) error {
	if err := s.access.AssertOwner(caller); err != nil {
		return err
	}

	if err := s.storage.SetStoragePrice(ctx, price); err != nil {
		return err
	}

	s.logger.Info("storage price updated",
		slog.Uint64("price_per_byte", price),
	)
	return nil
}

// Settle charges a call for the bytes its staged changeset adds.
// An underpaid call fails with ErrInsufficientPayment and must cause the
// caller to discard the changeset; an overpaid call is owed the refund.
func (s *Service) Settle(ctx context.Context, delta int64, payment uint64) (*Settlement, error) {
	price, err := s.PricePerByte(ctx)
	if err != nil {
		return nil, err
	}

	var required uint64
	if delta > 0 {
		required = uint64(delta) * price
	}

	if payment < required {
		return nil, model.ErrInsufficientPayment
	}

	return &Settlement{
		Delta:    delta,
		Required: required,
		Refund:   payment - required,
	}, nil
}
