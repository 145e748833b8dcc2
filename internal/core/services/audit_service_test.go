package services_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/core/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// --- Mock AuditReader ---
type MockAuditReader struct {
	mock.Mock
}

var _ portsrepo.AuditReader = (*MockAuditReader)(nil)

func (m *MockAuditReader) ListAuditEntries(ctx context.Context, filter portsrepo.AuditFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Test Suite Setup ---
type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditReader
	mockFolioRepo *MockFolioRepository
	service       portssvc.AuditSvcFacade
	folio         domain.Folio
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditReader)
	suite.mockFolioRepo = new(MockFolioRepository)
	suite.service = services.NewAuditService(suite.mockAuditRepo, suite.mockFolioRepo)

	suite.folio = domain.Folio{
		FolioID:     uuid.NewString(),
		FolioNumber: "F-2026-000123",
		Status:      domain.FolioOpen,
	}
}

func (suite *AuditServiceTestSuite) entry(action domain.AuditAction, description string, at time.Time) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		EntryID:     uuid.NewString(),
		EntityType:  "transaction",
		EntityID:    uuid.NewString(),
		Action:      action,
		ActorID:     uuid.NewString(),
		ActorName:   "Priya Nair",
		ActorEmail:  "priya@frontdesk.example",
		Description: description,
		Timestamp:   at,
	}
}

func (suite *AuditServiceTestSuite) expectFolio(ctx context.Context) {
	suite.mockFolioRepo.On("FindFolioByID", ctx, suite.folio.FolioID).Return(&suite.folio, nil)
}

// --- Test Cases ---

func (suite *AuditServiceTestSuite) TestListFolioAudit_FolioMustExist() {
	ctx := context.Background()
	folioID := uuid.NewString()

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListFolioAudit(ctx, folioID, dto.ListAuditParams{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListAuditEntries", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestListFolioAudit_SearchFiltersInMemory() {
	ctx := context.Background()
	day := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	entries := []domain.AuditLogEntry{
		suite.entry(domain.ActionCreate, "Posted Room charge night 1", day),
		suite.entry(domain.ActionVoid, "Voided Minibar charge", day.Add(-time.Hour)),
	}

	suite.expectFolio(ctx)
	suite.mockAuditRepo.On("ListAuditEntries", ctx, mock.AnythingOfType("repositories.AuditFilter")).Return(entries, nil).Once()

	search := "minibar"
	got, err := suite.service.ListFolioAudit(ctx, suite.folio.FolioID, dto.ListAuditParams{Search: &search})

	suite.Require().NoError(err)
	suite.Require().Len(got, 1, "search is case-insensitive over display fields")
	suite.Equal(domain.ActionVoid, got[0].Action)
}

func (suite *AuditServiceTestSuite) TestListFolioAudit_SearchMatchesActorAndAction() {
	ctx := context.Background()
	entries := []domain.AuditLogEntry{
		suite.entry(domain.ActionCreate, "Posted payment", time.Now().UTC()),
	}

	suite.expectFolio(ctx)
	suite.mockAuditRepo.On("ListAuditEntries", ctx, mock.AnythingOfType("repositories.AuditFilter")).Return(entries, nil)

	for _, term := range []string{"priya", "FRONTDESK.EXAMPLE", "create"} {
		got, err := suite.service.ListFolioAudit(ctx, suite.folio.FolioID, dto.ListAuditParams{Search: &term})
		suite.Require().NoError(err)
		suite.Len(got, 1, "searching for %q", term)
	}
}

func (suite *AuditServiceTestSuite) TestListFolioAudit_BadDateRejected() {
	ctx := context.Background()
	suite.expectFolio(ctx)

	bad := "02/04/2026"
	_, err := suite.service.ListFolioAudit(ctx, suite.folio.FolioID, dto.ListAuditParams{StartDate: &bad})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListAuditEntries", mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestListFolioAudit_InvertedRangeRejected() {
	ctx := context.Background()
	suite.expectFolio(ctx)

	start, end := "2026-04-10", "2026-04-01"
	_, err := suite.service.ListFolioAudit(ctx, suite.folio.FolioID, dto.ListAuditParams{StartDate: &start, EndDate: &end})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AuditServiceTestSuite) TestGroupFolioAuditByDay_NewestFirst() {
	ctx := context.Background()
	day := func(dd, hh int) time.Time { return time.Date(2026, 4, dd, hh, 0, 0, 0, time.UTC) }

	// Store order is newest first; groups must come out in the same order.
	entries := []domain.AuditLogEntry{
		suite.entry(domain.ActionSettle, "Folio settled", day(3, 18)),
		suite.entry(domain.ActionCreate, "Posted payment", day(3, 9)),
		suite.entry(domain.ActionCreate, "Posted room charge", day(1, 22)),
	}

	suite.expectFolio(ctx)
	suite.mockAuditRepo.On("ListAuditEntries", ctx, mock.AnythingOfType("repositories.AuditFilter")).Return(entries, nil).Once()

	groups, err := suite.service.GroupFolioAuditByDay(ctx, suite.folio.FolioID, dto.ListAuditParams{})

	suite.Require().NoError(err)
	suite.Require().Len(groups, 2)
	suite.Equal("2026-04-03", groups[0].Date)
	suite.Len(groups[0].Entries, 2)
	suite.Equal("Folio settled", groups[0].Entries[0].Description, "within-day order is preserved")
	suite.Equal("2026-04-01", groups[1].Date)
	suite.Len(groups[1].Entries, 1)
}

func (suite *AuditServiceTestSuite) TestExportCSV() {
	ctx := context.Background()
	at := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	entries := []domain.AuditLogEntry{
		suite.entry(domain.ActionCreate, "Posted Room charge night 1", at),
	}

	suite.expectFolio(ctx)
	suite.mockAuditRepo.On("ListAuditEntries", ctx, mock.AnythingOfType("repositories.AuditFilter")).Return(entries, nil).Once()

	filename, payload, err := suite.service.ExportCSV(ctx, suite.folio.FolioID, dto.ListAuditParams{})

	suite.Require().NoError(err)
	wantName := fmt.Sprintf("folio-audit-trail-%s-%s.csv", suite.folio.FolioNumber, time.Now().UTC().Format("2006-01-02"))
	suite.Equal(wantName, filename)

	rows, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal([]string{"Timestamp", "User", "Email", "Action", "Entity Type", "Description"}, rows[0])
	suite.Equal("2026-04-02T10:30:00Z", rows[1][0])
	suite.Equal("Priya Nair", rows[1][1])
	suite.Equal("create", rows[1][3])
	suite.Equal("Posted Room charge night 1", rows[1][5])
}

func (suite *AuditServiceTestSuite) TestExportCSV_EmptyTrailStillHasHeader() {
	ctx := context.Background()
	suite.expectFolio(ctx)
	suite.mockAuditRepo.On("ListAuditEntries", ctx, mock.AnythingOfType("repositories.AuditFilter")).Return([]domain.AuditLogEntry{}, nil).Once()

	_, payload, err := suite.service.ExportCSV(ctx, suite.folio.FolioID, dto.ListAuditParams{})

	suite.Require().NoError(err)
	suite.Equal("Timestamp,User,Email,Action,Entity Type,Description\n", string(payload))
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
