package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"gameledger/internal/model"
	"gameledger/internal/storage/memory"
	"gameledger/internal/testutil"
)

const testOwner = model.AccountID("owner.test")

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testOwner, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestOwner() {
	s.Equal(testOwner, s.service.Owner())
}

func (s *ServiceSuite) TestAssertOwner() {
	s.NoError(s.service.AssertOwner(testOwner))
	s.ErrorIs(s.service.AssertOwner("alice.test"), model.ErrNotOwner)
}

func (s *ServiceSuite) TestAssertAdminAcceptsOwner() {
	s.NoError(s.service.AssertAdmin(s.ctx, testOwner))
}

func (s *ServiceSuite) TestAssertAdminAcceptsRosterMember() {
	err := s.service.AddAdmin(s.ctx, testOwner, "alice.test")
	s.Require().NoError(err)

	s.NoError(s.service.AssertAdmin(s.ctx, "alice.test"))
}

func (s *ServiceSuite) TestAssertAdminRejectsOthers() {
	s.ErrorIs(s.service.AssertAdmin(s.ctx, "alice.test"), model.ErrNotAdmin)
}

func (s *ServiceSuite) TestAddAdminOwnerOnly() {
	err := s.service.AddAdmin(s.ctx, "alice.test", "bob.test")
	s.ErrorIs(err, model.ErrNotOwner)

	// A rejected call must not grow the roster
	admins, err := s.service.ListAdmins(s.ctx)
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ServiceSuite) TestAddAdminRejectsDuplicate() {
	err := s.service.AddAdmin(s.ctx, testOwner, "alice.test")
	s.Require().NoError(err)

	err = s.service.AddAdmin(s.ctx, testOwner, "alice.test")
	s.ErrorIs(err, model.ErrAlreadyAdmin)

	admins, err := s.service.ListAdmins(s.ctx)
	s.Require().NoError(err)
	s.Len(admins, 1)
}

func (s *ServiceSuite) TestListAdminsEmptyInitially() {
	admins, err := s.service.ListAdmins(s.ctx)
	s.Require().NoError(err)
	s.Empty(admins)
}

func (s *ServiceSuite) TestRemoveAdmin() {
	_ = s.service.AddAdmin(s.ctx, testOwner, "alice.test")
	_ = s.service.AddAdmin(s.ctx, testOwner, "bob.test")

	err := s.service.RemoveAdmin(s.ctx, testOwner, "alice.test")
	s.Require().NoError(err)

	admins, err := s.service.ListAdmins(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.AccountID{"bob.test"}, admins)

	s.ErrorIs(s.service.AssertAdmin(s.ctx, "alice.test"), model.ErrNotAdmin)
}

func (s *ServiceSuite) TestRemoveAdminRejectsMissing() {
	err := s.service.RemoveAdmin(s.ctx, testOwner, "alice.test")
	s.ErrorIs(err, model.ErrAdminNotFound)
}

func (s *ServiceSuite) TestRemoveAdminOwnerOnly() {
	_ = s.service.AddAdmin(s.ctx, testOwner, "alice.test")

	err := s.service.RemoveAdmin(s.ctx, "alice.test", "alice.test")
	s.ErrorIs(err, model.ErrNotOwner)
}
