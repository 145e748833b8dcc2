package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/handlers"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// --- Mock FolioService ---
type MockFolioService struct {
	mock.Mock
}

func (m *MockFolioService) GetOrCreateMasterFolio(ctx context.Context, reservationID string, actorID string) (*domain.Folio, error) {
	args := m.Called(ctx, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}
func (m *MockFolioService) CreateFolio(ctx context.Context, reservationID string, req dto.CreateFolioRequest, actorID string) (*domain.Folio, error) {
	args := m.Called(ctx, reservationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}
func (m *MockFolioService) GetFolio(ctx context.Context, folioID string) (*domain.Folio, *domain.FolioTotals, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Folio), args.Get(1).(*domain.FolioTotals), args.Error(2)
}
func (m *MockFolioService) ListFolios(ctx context.Context, reservationID string) ([]domain.Folio, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Folio), args.Error(1)
}
func (m *MockFolioService) UpdateFolio(ctx context.Context, folioID string, req dto.UpdateFolioRequest, actorID string) (*domain.Folio, error) {
	args := m.Called(ctx, folioID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}
func (m *MockFolioService) ReopenFolio(ctx context.Context, folioID string, actorID string) (*domain.Folio, error) {
	args := m.Called(ctx, folioID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

var _ portssvc.FolioSvcFacade = (*MockFolioService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) PostTransaction(ctx context.Context, folioID string, req dto.CreateTransactionRequest, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, folioID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) PostRoomCharge(ctx context.Context, folioID string, req dto.RoomChargeRequest, actorID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, folioID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteDraft(ctx context.Context, transactionID string, actorID string) error {
	args := m.Called(ctx, transactionID, actorID)
	return args.Error(0)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, folioID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, folioID, params)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return txns, next, args.Error(2)
}
func (m *MockTransactionService) GetTotals(ctx context.Context, folioID string) (*domain.FolioTotals, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTotals), args.Error(1)
}
func (m *MockTransactionService) RevenueBreakdown(ctx context.Context, folioID string) (map[domain.Category]decimal.Decimal, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Category]decimal.Decimal), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.TransferRecord, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRecord), args.Error(1)
}
func (m *MockTransferService) ListTransfers(ctx context.Context, folioID string) ([]domain.TransferRecord, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRecord), args.Error(1)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ListFolioAudit(ctx context.Context, folioID string, params dto.ListAuditParams) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, folioID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}
func (m *MockAuditService) GroupFolioAuditByDay(ctx context.Context, folioID string, params dto.ListAuditParams) ([]dto.AuditDayGroupResponse, error) {
	args := m.Called(ctx, folioID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AuditDayGroupResponse), args.Error(1)
}
func (m *MockAuditService) ExportCSV(ctx context.Context, folioID string, params dto.ListAuditParams) (string, []byte, error) {
	args := m.Called(ctx, folioID, params)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Test Suite ---
type FolioHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockFolioService    *MockFolioService
	mockTxnService      *MockTransactionService
	mockTransferService *MockTransferService
	mockAuditService    *MockAuditService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *FolioHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "folio-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *FolioHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockFolioService = new(MockFolioService)
	suite.mockTxnService = new(MockTransactionService)
	suite.mockTransferService = new(MockTransferService)
	suite.mockAuditService = new(MockAuditService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterFolioRoutes(v1, suite.mockFolioService, suite.mockTxnService, suite.mockTransferService, suite.mockAuditService, "₹")
}

func (suite *FolioHandlerTestSuite) doRequest(method, url, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FolioHandlerTestSuite) TestGetFolio_Success() {
	folioID := uuid.NewString()
	userID := uuid.NewString()
	folio := &domain.Folio{
		FolioID:     folioID,
		FolioNumber: "F-2026-000123",
		Type:        domain.FolioMaster,
		Status:      domain.FolioOpen,
	}
	totals := &domain.FolioTotals{
		TotalCharges:  decimal.NewFromInt(4000),
		TotalPayments: decimal.NewFromInt(1500),
		Balance:       decimal.NewFromInt(2500),
	}

	suite.mockFolioService.On("GetFolio", mock.Anything, folioID).Return(folio, totals, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/folios/"+folioID, userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.FolioResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(folioID, body.FolioID)
	suite.Require().NotNil(body.Totals)
	suite.True(body.Totals.Balance.Equal(decimal.NewFromInt(2500)))
	suite.Equal("₹2,500.00", body.Totals.BalanceFormatted)
	suite.mockFolioService.AssertExpectations(suite.T())
}

func (suite *FolioHandlerTestSuite) TestGetFolio_NotFound() {
	folioID := uuid.NewString()

	suite.mockFolioService.On("GetFolio", mock.Anything, folioID).
		Return(nil, nil, fmt.Errorf("folio %s: %w", folioID, apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/folios/"+folioID, uuid.NewString())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *FolioHandlerTestSuite) TestGetFolio_MissingTokenRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/folios/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockFolioService.AssertNotCalled(suite.T(), "GetFolio", mock.Anything, mock.Anything)
}

func (suite *FolioHandlerTestSuite) TestListTransactions_Success() {
	folioID := uuid.NewString()
	userID := uuid.NewString()
	limit := 10

	txns := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			FolioID:       folioID,
			Type:          domain.TxnRoomCharge,
			Amount:        decimal.NewFromInt(5000),
			Status:        domain.TxnPosted,
		},
	}

	suite.mockTxnService.On("ListTransactions",
		mock.Anything,
		folioID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == limit
		}),
	).Return(txns, "next-token", nil).Once()

	url := fmt.Sprintf("/api/v1/folios/%s/transactions?limit=%d", folioID, limit)
	w := suite.doRequest(http.MethodGet, url, userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Transactions, 1)
	suite.Equal(txns[0].TransactionID, body.Transactions[0].TransactionID)
	suite.Equal("₹5,000.00", body.Transactions[0].AmountFormatted)
	suite.Require().NotNil(body.NextToken)
	suite.Equal("next-token", *body.NextToken)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *FolioHandlerTestSuite) TestReopenFolio_Conflict() {
	folioID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockFolioService.On("ReopenFolio", mock.Anything, folioID, userID).
		Return(nil, fmt.Errorf("%w: only settled folios can be reopened", apperrors.ErrStateConflict)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/folios/%s/reopen", folioID), userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *FolioHandlerTestSuite) TestExportAudit_SetsDownloadHeaders() {
	folioID := uuid.NewString()
	userID := uuid.NewString()
	filename := "folio-audit-trail-F-2026-000123-2026-08-28.csv"
	payload := []byte("Timestamp,User,Email,Action,Entity Type,Description\n")

	suite.mockAuditService.On("ExportCSV", mock.Anything, folioID, mock.AnythingOfType("dto.ListAuditParams")).
		Return(filename, payload, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/folios/%s/audit/export", folioID), userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), filename)
	suite.Equal(string(payload), w.Body.String())
}

// --- Run Test Suite ---
func TestFolioHandler(t *testing.T) {
	suite.Run(t, new(FolioHandlerTestSuite))
}
