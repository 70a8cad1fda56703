package metering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"gameledger/internal/model"
	"gameledger/internal/services/access"
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
	logger := testutil.NopLogger()
	s.storage = memory.New()
	accessService := access.New(s.storage, testOwner, logger)
	s.service = New(s.storage, accessService, 1, logger)
	s.ctx = context.Background()
}

// Price tests

func (s *ServiceSuite) TestPricePerByteDefaultsUntilSet() {
	price, err := s.service.PricePerByte(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), price)
}

func (s *ServiceSuite) TestSetPricePerByte() {
	err := s.service.SetPricePerByte(s.ctx, testOwner, 5)
	s.Require().NoError(err)

	price, err := s.service.PricePerByte(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(5), price)
}

func (s *ServiceSuite) TestSetPricePerByteOwnerOnly() {
	err := s.service.SetPricePerByte(s.ctx, "alice.test", 5)
	s.ErrorIs(err, model.ErrNotOwner)

	price, err := s.service.PricePerByte(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), price)
}

func (s *ServiceSuite) TestSetPricePerByteZeroDisablesCharging() {
	err := s.service.SetPricePerByte(s.ctx, testOwner, 0)
	s.Require().NoError(err)

	settlement, err := s.service.Settle(s.ctx, 500, 0)
	s.Require().NoError(err)
	s.Zero(settlement.Required)
}

// Settlement tests

func (s *ServiceSuite) TestSettleChargesForDelta() {
	_ = s.service.SetPricePerByte(s.ctx, testOwner, 2)

	settlement, err := s.service.Settle(s.ctx, 100, 250)
	s.Require().NoError(err)
	s.Equal(int64(100), settlement.Delta)
	s.Equal(uint64(200), settlement.Required)
	s.Equal(uint64(50), settlement.Refund)
}

func (s *ServiceSuite) TestSettleRejectsUnderpayment() {
	_, err := s.service.Settle(s.ctx, 100, 99)
	s.ErrorIs(err, model.ErrInsufficientPayment)
}

func (s *ServiceSuite) TestSettleExactPaymentNoRefund() {
	settlement, err := s.service.Settle(s.ctx, 100, 100)
	s.Require().NoError(err)
	s.Zero(settlement.Refund)
}

func (s *ServiceSuite) TestSettleNonPositiveDeltaIsFree() {
	settlement, err := s.service.Settle(s.ctx, -20, 0)
	s.Require().NoError(err)
	s.Zero(settlement.Required)
	s.Zero(settlement.Refund)
}

// Meter tests

func (s *ServiceSuite) TestStorageMeterReadsBackend() {
	meter := NewStorageMeter(s.storage)

	bytes, err := meter.StorageBytes(s.ctx)
	s.Require().NoError(err)
	s.Zero(bytes)
}

func (s *ServiceSuite) TestNullMeterAlwaysZero() {
	meter := &NullMeter{}

	bytes, err := meter.StorageBytes(s.ctx)
	s.Require().NoError(err)
	s.Zero(bytes)
}
