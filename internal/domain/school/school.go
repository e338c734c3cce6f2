// internal/domain/school/school.go
package school

import (
	"context"
	"time"
)

// AM identifies an Account Manager, the stakeholder a monthly summary email
// is drafted for.
type AM struct {
	Name  string
	Email string
}

// Key renders the composite persistence key for this AM. In-process code
// compares AM values structurally; the string form exists only for the flat
// key-value sent-marker store.
func (a AM) Key() string {
	return a.Email + "|" + a.Name
}

// Info is one directory entry routing a (school, campus) pair to its AM.
type Info struct {
	ID         int64
	SchoolName string
	Campus     string
	AMName     string
	AMEmail    string
	CreatedAt  time.Time
}

// AM returns the Account Manager this entry routes to.
func (i Info) AM() AM {
	return AM{Name: i.AMName, Email: i.AMEmail}
}

// Repository defines persistence for trainer-managed directory entries.
type Repository interface {
	Create(ctx context.Context, info *Info) error
	Delete(ctx context.Context, schoolName, campus string) error
	ListAll(ctx context.Context) ([]Info, error)
}
