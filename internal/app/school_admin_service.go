// internal/app/school_admin_service.go
package app

import (
	"context"
	"fmt"
	"strings"

	"am_summary_bot/internal/domain/school"
	idb "am_summary_bot/internal/infra/database"
)

// Custom application-level errors for the school admin service
var ErrNotAuthorized = fmt.Errorf("performing user is not the configured trainer")
var ErrSchoolAlreadyExists = fmt.Errorf("school with this name and campus already exists")

// SchoolAdminService manages the trainer's school directory entries. Only the
// configured trainer may mutate the directory.
type SchoolAdminService struct {
	schoolRepo        school.Repository
	trainerTelegramID int64
}

func NewSchoolAdminService(sr school.Repository, trainerID int64) *SchoolAdminService {
	return &SchoolAdminService{
		schoolRepo:        sr,
		trainerTelegramID: trainerID,
	}
}

// AddSchool catalogues a new (school, campus) pair with its AM routing.
func (s *SchoolAdminService) AddSchool(ctx context.Context, performingID int64, schoolName, campus, amName, amEmail string) (*school.Info, error) {
	if performingID != s.trainerTelegramID {
		return nil, ErrNotAuthorized
	}

	schoolName = strings.TrimSpace(schoolName)
	campus = strings.TrimSpace(campus)
	amName = strings.TrimSpace(amName)
	amEmail = strings.TrimSpace(amEmail)
	if schoolName == "" || campus == "" || amName == "" || amEmail == "" {
		return nil, fmt.Errorf("school, campus, AM name and AM email are all required")
	}

	info := &school.Info{
		SchoolName: schoolName,
		Campus:     campus,
		AMName:     amName,
		AMEmail:    amEmail,
	}
	if err := s.schoolRepo.Create(ctx, info); err != nil {
		if err == idb.ErrDuplicateSchool {
			return nil, ErrSchoolAlreadyExists
		}
		return nil, fmt.Errorf("failed to create school in repository: %w", err)
	}
	return info, nil
}

// RemoveSchool deletes a catalogued entry. Observations for that school fall
// back to the master list or drop out of AM-scoped views entirely.
func (s *SchoolAdminService) RemoveSchool(ctx context.Context, performingID int64, schoolName, campus string) error {
	if performingID != s.trainerTelegramID {
		return ErrNotAuthorized
	}
	err := s.schoolRepo.Delete(ctx, strings.TrimSpace(schoolName), strings.TrimSpace(campus))
	if err != nil {
		if err == idb.ErrSchoolNotFound {
			return idb.ErrSchoolNotFound
		}
		return fmt.Errorf("failed to delete school in repository: %w", err)
	}
	return nil
}

// ListSchools returns the catalogued entries (not the master-list fallback).
func (s *SchoolAdminService) ListSchools(ctx context.Context, performingID int64) ([]school.Info, error) {
	if performingID != s.trainerTelegramID {
		return nil, ErrNotAuthorized
	}
	entries, err := s.schoolRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	return entries, nil
}
