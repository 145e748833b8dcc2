package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// auditService implements the read-only audit trail view.
type auditService struct {
	auditRepo portsrepo.AuditReader
	folioRepo portsrepo.FolioReader
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditReader, folioRepo portsrepo.FolioReader) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
		folioRepo: folioRepo,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

var csvHeader = []string{"Timestamp", "User", "Email", "Action", "Entity Type", "Description"}

func (s *auditService) buildFilter(folioID string, params dto.ListAuditParams) (portsrepo.AuditFilter, error) {
	filter := portsrepo.AuditFilter{
		FolioID:    &folioID,
		EntityType: params.EntityType,
		ActorID:    params.ActorID,
	}

	if params.Action != nil && *params.Action != "" {
		action := domain.AuditAction(*params.Action)
		filter.Action = &action
	}

	if params.StartDate != nil && *params.StartDate != "" {
		start, err := time.Parse("2006-01-02", *params.StartDate)
		if err != nil {
			return filter, apperrors.NewValidationError(map[string]string{"startDate": "must be yyyy-mm-dd"})
		}
		filter.StartDate = &start
	}
	if params.EndDate != nil && *params.EndDate != "" {
		end, err := time.Parse("2006-01-02", *params.EndDate)
		if err != nil {
			return filter, apperrors.NewValidationError(map[string]string{"endDate": "must be yyyy-mm-dd"})
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, apperrors.NewValidationError(map[string]string{"endDate": "must not precede startDate"})
	}
	return filter, nil
}

// matchesSearch does a case-insensitive substring match over the entry's
// display fields. Search is applied in memory after the store filter.
func matchesSearch(e *domain.AuditLogEntry, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{e.Description, e.ActorName, e.ActorEmail, e.EntityType, string(e.Action)} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// ListFolioAudit retrieves the filtered audit trail of a folio, newest first.
func (s *auditService) ListFolioAudit(ctx context.Context, folioID string, params dto.ListAuditParams) ([]domain.AuditLogEntry, error) {
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, err
	}

	filter, err := s.buildFilter(folioID, params)
	if err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.ListAuditEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail for folio %s: %w", folioID, err)
	}

	if params.Search == nil || strings.TrimSpace(*params.Search) == "" {
		return entries, nil
	}
	term := strings.TrimSpace(*params.Search)
	filtered := make([]domain.AuditLogEntry, 0, len(entries))
	for i := range entries {
		if matchesSearch(&entries[i], term) {
			filtered = append(filtered, entries[i])
		}
	}
	return filtered, nil
}

// GroupFolioAuditByDay buckets the filtered trail by calendar day. Entries
// arrive newest first, so the day groups come out newest first too and the
// within-day order is preserved.
func (s *auditService) GroupFolioAuditByDay(ctx context.Context, folioID string, params dto.ListAuditParams) ([]dto.AuditDayGroupResponse, error) {
	entries, err := s.ListFolioAudit(ctx, folioID, params)
	if err != nil {
		return nil, err
	}

	groups := make([]dto.AuditDayGroupResponse, 0)
	index := make(map[string]int)
	for i := range entries {
		day := entries[i].Timestamp.UTC().Format("2006-01-02")
		at, ok := index[day]
		if !ok {
			at = len(groups)
			index[day] = at
			groups = append(groups, dto.AuditDayGroupResponse{Date: day})
		}
		groups[at].Entries = append(groups[at].Entries, dto.ToAuditEntryResponse(&entries[i]))
	}
	return groups, nil
}

// ExportCSV projects the filtered trail to CSV for download.
func (s *auditService) ExportCSV(ctx context.Context, folioID string, params dto.ListAuditParams) (string, []byte, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return "", nil, err
	}

	entries, err := s.ListFolioAudit(ctx, folioID, params)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		row := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.ActorName,
			e.ActorEmail,
			string(e.Action),
			e.EntityType,
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("folio-audit-trail-%s-%s.csv", folio.FolioNumber, time.Now().UTC().Format("2006-01-02"))
	return filename, buf.Bytes(), nil
}
