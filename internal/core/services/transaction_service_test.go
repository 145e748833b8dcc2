package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/core/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByFolioID(ctx context.Context, folioID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByFolioID(ctx context.Context, folioID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, folioID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ReassignFolio(ctx context.Context, transactionID, toFolioID, fromFolioID, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, toFolioID, fromFolioID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock FolioRepository ---
type MockFolioRepository struct {
	mock.Mock
}

var _ portsrepo.FolioRepositoryFacade = (*MockFolioRepository)(nil)

func (m *MockFolioRepository) FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) FindMasterFolio(ctx context.Context, reservationID string) (*domain.Folio, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) ListFoliosByReservation(ctx context.Context, reservationID string) ([]domain.Folio, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) SaveFolio(ctx context.Context, folio domain.Folio) error {
	args := m.Called(ctx, folio)
	return args.Error(0)
}

func (m *MockFolioRepository) UpdateFolio(ctx context.Context, folio domain.Folio) error {
	args := m.Called(ctx, folio)
	return args.Error(0)
}

// --- Mock PaymentGateway ---
type MockPaymentGateway struct {
	mock.Mock
}

var _ portssvc.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*portssvc.GatewayOrder, error) {
	args := m.Called(ctx, amount, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.GatewayOrder), args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockFolioRepo *MockFolioRepository
	mockGateway   *MockPaymentGateway
	service       portssvc.TransactionSvcFacade
	openFolio     domain.Folio
	settledFolio  domain.Folio
	actorID       string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockFolioRepo = new(MockFolioRepository)
	suite.mockGateway = new(MockPaymentGateway)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockFolioRepo, suite.mockGateway, decimal.NewFromFloat(0.18))

	suite.actorID = uuid.NewString()
	reservationID := uuid.NewString()

	suite.openFolio = domain.Folio{
		FolioID:       uuid.NewString(),
		FolioNumber:   "F-20260312-0001",
		ReservationID: reservationID,
		Type:          domain.FolioMaster,
		Status:        domain.FolioOpen,
	}
	suite.settledFolio = domain.Folio{
		FolioID:       uuid.NewString(),
		FolioNumber:   "F-20260312-0002",
		ReservationID: reservationID,
		Type:          domain.FolioRoom,
		Status:        domain.FolioSettled,
	}
}

func chargeRequest() dto.CreateTransactionRequest {
	rate := decimal.NewFromInt(1500)
	return dto.CreateTransactionRequest{
		Type:        domain.TxnAddonCharge,
		Category:    domain.CategoryFood,
		Description: "Room service dinner",
		Quantity:    decimal.NewFromInt(2),
		Rate:        &rate,
		PostDate:    time.Date(2026, 3, 12, 20, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	req := chargeRequest()

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.openFolio.FolioID, txn.FolioID)
	suite.Equal(suite.openFolio.ReservationID, txn.ReservationID)
	suite.Equal(domain.TxnPosted, txn.Status)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(3000)), "amount is quantity*rate, got %s", txn.Amount)
	suite.Equal(suite.actorID, txn.CreatedBy)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockFolioRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_DiscountStoredNegative() {
	ctx := context.Background()
	rate := decimal.NewFromInt(500)
	req := dto.CreateTransactionRequest{
		Type:        domain.TxnDiscount,
		Category:    domain.CategoryDiscount,
		Description: "Loyalty discount",
		Quantity:    decimal.NewFromInt(1),
		Rate:        &rate,
		PostDate:    time.Now().UTC(),
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(-500)), "discount coerced negative, got %s", txn.Amount)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_ValidationCollectsAllFields() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Type:     domain.TransactionType("bogus"),
		Category: domain.Category("bogus"),
		Quantity: decimal.Zero,
	}

	txn, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Contains(vErr.Fields, "description")
	suite.Contains(vErr.Fields, "quantity")
	suite.Contains(vErr.Fields, "rate")
	suite.Contains(vErr.Fields, "postDate")
	suite.Contains(vErr.Fields, "type")
	suite.Contains(vErr.Fields, "category")

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_PaymentRequiresDetails() {
	ctx := context.Background()
	rate := decimal.NewFromInt(1000)
	req := dto.CreateTransactionRequest{
		Type:        domain.TxnPayment,
		Category:    domain.CategoryPayment,
		Description: "Cash payment",
		Quantity:    decimal.NewFromInt(1),
		Rate:        &rate,
		PostDate:    time.Now().UTC(),
	}

	_, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Contains(vErr.Fields, "payment")
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_CardPaymentRequiresCardFields() {
	ctx := context.Background()
	rate := decimal.NewFromInt(1000)
	req := dto.CreateTransactionRequest{
		Type:        domain.TxnPayment,
		Category:    domain.CategoryPayment,
		Description: "Card payment",
		Quantity:    decimal.NewFromInt(1),
		Rate:        &rate,
		PostDate:    time.Now().UTC(),
		Payment:     &dto.PaymentDetailsRequest{Method: domain.MethodCard},
	}

	_, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Contains(vErr.Fields, "payment.card.lastFour")
	suite.Contains(vErr.Fields, "payment.card.cardType")
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_SettledFolioConflict() {
	ctx := context.Background()

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.settledFolio.FolioID).Return(&suite.settledFolio, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.settledFolio.FolioID, chargeRequest(), suite.actorID)

	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_UnverifiedOnlinePaymentIsPending() {
	ctx := context.Background()
	rate := decimal.NewFromInt(2500)
	req := dto.CreateTransactionRequest{
		Type:        domain.TxnPayment,
		Category:    domain.CategoryPayment,
		Description: "Online payment",
		Quantity:    decimal.NewFromInt(1),
		Rate:        &rate,
		PostDate:    time.Now().UTC(),
		Payment: &dto.PaymentDetailsRequest{
			Method:  domain.MethodOnline,
			Gateway: &domain.GatewayDetails{Provider: "razorpay", OrderID: "order_123"},
		},
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnPending, txn.Status, "online payments without a verified signature stay pending")
	suite.mockGateway.AssertNotCalled(suite.T(), "VerifySignature", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_ForgedGatewaySignatureRejected() {
	ctx := context.Background()
	rate := decimal.NewFromInt(2500)
	req := dto.CreateTransactionRequest{
		Type:        domain.TxnPayment,
		Category:    domain.CategoryPayment,
		Description: "Online payment",
		Quantity:    decimal.NewFromInt(1),
		Rate:        &rate,
		PostDate:    time.Now().UTC(),
		Payment: &dto.PaymentDetailsRequest{
			Method: domain.MethodOnline,
			Gateway: &domain.GatewayDetails{
				Provider:  "razorpay",
				OrderID:   "order_123",
				PaymentID: "pay_456",
				Signature: "totally-forged",
			},
		},
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockGateway.On("VerifySignature", "order_123", "pay_456", "totally-forged").Return(false).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var vErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &vErr)
	suite.Contains(vErr.Fields, "payment.gateway.signature")

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_VerifiedOnlinePaymentPosts() {
	ctx := context.Background()
	rate := decimal.NewFromInt(2500)
	req := dto.CreateTransactionRequest{
		Type:        domain.TxnPayment,
		Category:    domain.CategoryPayment,
		Description: "Online payment",
		Quantity:    decimal.NewFromInt(1),
		Rate:        &rate,
		PostDate:    time.Now().UTC(),
		Payment: &dto.PaymentDetailsRequest{
			Method: domain.MethodOnline,
			Gateway: &domain.GatewayDetails{
				Provider:  "razorpay",
				OrderID:   "order_123",
				PaymentID: "pay_456",
				Signature: "valid-signature",
			},
		},
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockGateway.On("VerifySignature", "order_123", "pay_456", "valid-signature").Return(true).Once()

	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Transaction)
		}).
		Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnPosted, txn.Status)
	suite.Equal(domain.TxnPosted, saved.Status, "the persisted row carries the posted status")
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostRoomCharge_WithTax() {
	ctx := context.Background()
	rate := decimal.NewFromInt(4000)
	req := dto.RoomChargeRequest{
		Nights:   decimal.NewFromInt(2),
		Rate:     &rate,
		PostDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		WithTax:  true,
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()

	var saved []domain.Transaction
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.AnythingOfType("[]domain.Transaction")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).([]domain.Transaction)
		}).Return(nil).Once()

	txns, err := suite.service.PostRoomCharge(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 2)
	suite.Require().Len(saved, 2, "charge and tax are persisted in one batch")

	suite.Equal(domain.TxnRoomCharge, txns[0].Type)
	suite.True(txns[0].Amount.Equal(decimal.NewFromInt(8000)))

	suite.Equal(domain.TxnTax, txns[1].Type)
	suite.True(txns[1].Amount.Equal(decimal.NewFromInt(1440)), "18%% GST on 8000, got %s", txns[1].Amount)
}

func (suite *TransactionServiceTestSuite) TestPostRoomCharge_WithoutTax() {
	ctx := context.Background()
	rate := decimal.NewFromInt(4000)
	req := dto.RoomChargeRequest{
		Nights:   decimal.NewFromInt(1),
		Rate:     &rate,
		PostDate: time.Now().UTC(),
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("SaveTransactions", ctx, mock.AnythingOfType("[]domain.Transaction")).Return(nil).Once()

	txns, err := suite.service.PostRoomCharge(ctx, suite.openFolio.FolioID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(txns, 1)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_Success() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		FolioID:       suite.openFolio.FolioID,
		Type:          domain.TxnAddonCharge,
		Status:        domain.TxnPosted,
		Amount:        decimal.NewFromInt(500),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	voided, err := suite.service.VoidTransaction(ctx, txn.TransactionID, "posted to wrong folio", suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.TxnVoided, voided.Status)
	suite.Equal("posted to wrong folio", voided.VoidReason)
	suite.NotNil(voided.VoidedAt)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.VoidTransaction(ctx, uuid.NewString(), "   ", suite.actorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_AlreadyVoided() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TxnVoided,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.VoidTransaction(ctx, txn.TransactionID, "again", suite.actorID)

	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

func (suite *TransactionServiceTestSuite) TestDeleteDraft_OnlyPending() {
	ctx := context.Background()
	posted := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.TxnPosted}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, posted.TransactionID).Return(posted, nil).Once()

	err := suite.service.DeleteDraft(ctx, posted.TransactionID, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteDraft_Success() {
	ctx := context.Background()
	draft := &domain.Transaction{TransactionID: uuid.NewString(), Status: domain.TxnPending}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, draft.TransactionID).Return(draft, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, draft.TransactionID).Return(nil).Once()

	err := suite.service.DeleteDraft(ctx, draft.TransactionID, suite.actorID)

	suite.NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_UnfilteredUsesKeyset() {
	ctx := context.Background()
	page := []domain.Transaction{{TransactionID: uuid.NewString()}}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByFolioID", ctx, suite.openFolio.FolioID, 25, (*string)(nil)).
		Return(page, "next-token", nil).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, suite.openFolio.FolioID, dto.ListTransactionsParams{Limit: 25})

	suite.Require().NoError(err)
	suite.Len(txns, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal("next-token", *nextToken)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByFolioID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_TypeFilterRunsOverFullSet() {
	ctx := context.Background()
	all := []domain.Transaction{
		{TransactionID: "a", Type: domain.TxnRoomCharge},
		{TransactionID: "b", Type: domain.TxnPayment},
		{TransactionID: "c", Type: domain.TxnRoomCharge},
	}
	typeFilter := "room_charge"

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, suite.openFolio.FolioID).Return(all, nil).Once()

	txns, nextToken, err := suite.service.ListTransactions(ctx, suite.openFolio.FolioID, dto.ListTransactionsParams{Type: &typeFilter})

	suite.Require().NoError(err)
	suite.Len(txns, 2)
	suite.Nil(nextToken, "filtered reads are not paginated")
}

func (suite *TransactionServiceTestSuite) TestGetTotals() {
	ctx := context.Background()
	all := []domain.Transaction{
		{Type: domain.TxnRoomCharge, Amount: decimal.NewFromInt(5000), Status: domain.TxnPosted},
		{Type: domain.TxnPayment, Amount: decimal.NewFromInt(2000), Status: domain.TxnPosted},
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.openFolio.FolioID).Return(&suite.openFolio, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, suite.openFolio.FolioID).Return(all, nil).Once()

	totals, err := suite.service.GetTotals(ctx, suite.openFolio.FolioID)

	suite.Require().NoError(err)
	suite.True(totals.Balance.Equal(decimal.NewFromInt(3000)))
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
