package access

import (
	"context"
	"log/slog"

	"gameledger/internal/model"
	"gameledger/internal/storage"
)

// Service gates privileged operations behind the owner and admin roster.
// The owner is fixed at initialization and never changes; the roster is
// dynamic and mutable only by the owner. Caller identity is supplied by
// the host environment, which has already authenticated it.
type Service struct {
	storage storage.Storage
	owner   model.AccountID
	logger  *slog.Logger
}

// New creates a new access control service
func New(store storage.Storage, owner model.AccountID, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		owner:   owner,
		logger:  logger,
	}
}

// Owner returns the immutable owner account
func (s *Service) Owner() model.AccountID {
	return s.owner
}

// AssertOwner rejects any caller other than the owner
func (s *Service) AssertOwner(caller model.AccountID) error {
	if caller != s.owner {
		return model.ErrNotOwner
	}
	return nil
}

// AssertAdmin rejects callers that are neither the owner nor on the roster
func (s *Service) AssertAdmin(ctx context.Context, caller model.AccountID) error {
	if caller == s.owner {
		return nil
	}

	admins, err := s.storage.GetAdmins(ctx)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		if admin == caller {
			return nil
		}
	}
	return model.ErrNotAdmin
}

// AddAdmin adds an account to the roster. Owner only; duplicates rejected.
func (s *Service) AddAdmin(ctx context.Context, caller, admin model.AccountID) error {
	if err := s.AssertOwner(caller); err != nil {
		return err
	}

	admins, err := s.storage.GetAdmins(ctx)
	if err != nil {
		return err
	}
	for _, existing := range admins {
		if existing == admin {
			return model.ErrAlreadyAdmin
		}
	}

	if err := s.storage.SaveAdmins(ctx, append(admins, admin)); err != nil {
		return err
	}

	s.logger.Info("admin added",
		slog.String("admin_id", string(admin)),
	)
	return nil
}

// RemoveAdmin removes an account from the roster. Owner only; removing a
// non-member is rejected.
func (s *Service) RemoveAdmin(ctx context.Context, caller, admin model.AccountID) error {
	if err := s.AssertOwner(caller); err != nil {
		return err
	}

	admins, err := s.storage.GetAdmins(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, existing := range admins {
		if existing == admin {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.ErrAdminNotFound
	}

	if err := s.storage.SaveAdmins(ctx, append(admins[:idx], admins[idx+1:]...)); err != nil {
		return err
	}

	s.logger.Info("admin removed",
		slog.String("admin_id", string(admin)),
	)
	return nil
}

// ListAdmins returns the current roster
func (s *Service) ListAdmins(ctx context.Context) ([]model.AccountID, error) {
	return s.storage.GetAdmins(ctx)
}
