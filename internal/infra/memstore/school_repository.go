// internal/infra/memstore/school_repository.go
package memstore

import (
	"context"
	"sync"
	"time"

	"am_summary_bot/internal/domain/school"
	idb "am_summary_bot/internal/infra/database"
)

type SchoolRepository struct {
	mu      sync.Mutex
	nextID  int64
	schools []school.Info
}

func NewSchoolRepository() *SchoolRepository {
	return &SchoolRepository{nextID: 1}
}

func (r *SchoolRepository) Create(ctx context.Context, info *school.Info) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schools {
		if s.SchoolName == info.SchoolName && s.Campus == info.Campus {
			return idb.ErrDuplicateSchool
		}
	}
	info.ID = r.nextID
	info.CreatedAt = time.Now().UTC()
	r.nextID++
	r.schools = append(r.schools, *info)
	return nil
}

func (r *SchoolRepository) Delete(ctx context.Context, schoolName, campus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.schools {
		if s.SchoolName == schoolName && s.Campus == campus {
			r.schools = append(r.schools[:i], r.schools[i+1:]...)
			return nil
		}
	}
	return idb.ErrSchoolNotFound
}

func (r *SchoolRepository) ListAll(ctx context.Context) ([]school.Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]school.Info, len(r.schools))
	copy(out, r.schools)
	return out, nil
}
