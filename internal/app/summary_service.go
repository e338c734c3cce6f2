// internal/app/summary_service.go
package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"am_summary_bot/internal/domain/observation"
	"am_summary_bot/internal/domain/school"
	"am_summary_bot/internal/domain/summary"
	idb "am_summary_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// PersistFailurePolicy controls what MarkSent does when the durable write of
// a sent marker fails. Under PolicyLog the in-memory mark is kept and the
// error only logged; under PolicySurface the error is returned to the caller.
// The in-memory mark stands either way.
type PersistFailurePolicy string

const (
	PolicyLog     PersistFailurePolicy = "log"
	PolicySurface PersistFailurePolicy = "surface"
)

// MonthGroup is one bucket of the chronological dashboard view.
type MonthGroup struct {
	Label string
	Items []observation.Summary
}

// SummaryService implements the monthly AM summary workflow: listing months
// and AMs, aggregating per-teacher next steps, and tracking sent state.
type SummaryService struct {
	obsRepo    observation.Repository
	schoolRepo school.Repository
	sentRepo   summary.SentRepository
	logger     *logrus.Entry
	policy     PersistFailurePolicy

	mu      sync.Mutex
	sentMem map[string]time.Time // in-process marks, survive failed durable writes
}

func NewSummaryService(
	obsRepo observation.Repository,
	schoolRepo school.Repository,
	sentRepo summary.SentRepository,
	logger *logrus.Entry,
	policy PersistFailurePolicy,
) *SummaryService {
	if policy == "" {
		policy = PolicyLog
	}
	return &SummaryService{
		obsRepo:    obsRepo,
		schoolRepo: schoolRepo,
		sentRepo:   sentRepo,
		logger:     logger,
		policy:     policy,
		sentMem:    make(map[string]time.Time),
	}
}

// directory loads the trainer's catalogued schools, falling back to the
// compiled-in master list when the table is empty or unreadable.
func (s *SummaryService) directory(ctx context.Context) school.Directory {
	entries, err := s.schoolRepo.ListAll(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Could not load school directory, falling back to master list")
		return school.NewDirectory(school.MasterList)
	}
	dir := school.NewDirectory(entries)
	if dir.Len() == 0 {
		return school.NewDirectory(school.MasterList)
	}
	return dir
}

// ListMonths returns the distinct month keys observed anywhere in the
// dataset, newest first. Observations without a resolvable date never get a
// month key and are absent here.
func (s *SummaryService) ListMonths(ctx context.Context) ([]string, error) {
	sums, err := s.obsRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}

	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, sum := range sums {
		key := observation.MonthKeyOf(sum.RawDate)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ti, _ := observation.ParseMonthKey(keys[i])
		tj, _ := observation.ParseMonthKey(keys[j])
		return ti.After(tj)
	})
	return keys, nil
}

// ListAMs returns the Account Managers that have at least one routable
// observation in the given month, sorted by name. The month scoping is what
// lets an AM selector narrow when the month selection changes.
func (s *SummaryService) ListAMs(ctx context.Context, monthKey string) ([]school.AM, error) {
	sums, err := s.obsRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	dir := s.directory(ctx)

	seen := make(map[school.AM]bool)
	ams := make([]school.AM, 0)
	for _, sum := range sums {
		if observation.MonthKeyOf(sum.RawDate) != monthKey {
			continue
		}
		info, ok := dir.Find(sum.SchoolName, sum.Campus)
		if !ok {
			s.logger.WithFields(logrus.Fields{
				"school": sum.SchoolName,
				"campus": sum.Campus,
			}).Debug("Observation school/campus not in directory, excluded from AM views")
			continue
		}
		am := info.AM()
		if !seen[am] {
			seen[am] = true
			ams = append(ams, am)
		}
	}
	sort.Slice(ams, func(i, j int) bool { return ams[i].Name < ams[j].Name })
	return ams, nil
}

// BuildSummary aggregates one month of observations for one AM into rows,
// one per (teacher, school, campus) triple.
//
// Every observation that matches the month and AM produces (or joins) a row,
// even when it contributes no qualifying indicator line; next-steps lines
// merge across observations in scan order, and the final rows are sorted by
// teacher name.
func (s *SummaryService) BuildSummary(ctx context.Context, monthKey string, am school.AM) ([]summary.Row, error) {
	sums, err := s.obsRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	dir := s.directory(ctx)

	type rowKey struct{ teacher, school, campus string }
	index := make(map[rowKey]int)
	rows := make([]summary.Row, 0)

	for _, sum := range sums {
		if observation.MonthKeyOf(sum.RawDate) != monthKey {
			continue
		}
		info, ok := dir.Find(sum.SchoolName, sum.Campus)
		if !ok {
			s.logger.WithFields(logrus.Fields{
				"school":         sum.SchoolName,
				"campus":         sum.Campus,
				"observation_id": sum.ID,
			}).Debug("Observation school/campus not in directory, excluded from AM summary")
			continue
		}
		if info.AM() != am {
			continue
		}

		key := rowKey{sum.TeacherName, sum.SchoolName, sum.Campus}
		idx, exists := index[key]
		if !exists {
			rows = append(rows, summary.Row{
				SchoolName:  sum.SchoolName,
				Campus:      sum.Campus,
				TeacherName: sum.TeacherName,
				Status:      summary.RowStatusNone,
			})
			idx = len(rows) - 1
			index[key] = idx
		}

		// The lightweight summary carries no indicator detail; re-read the
		// full cached document by id.
		rec, err := s.obsRepo.Get(ctx, sum.ID)
		if err != nil {
			s.logger.WithError(err).WithField("observation_id", sum.ID).Warn("Could not re-read observation for indicator detail")
			continue
		}

		display := observation.DisplayDate(*sum.RawDate)
		for _, ind := range rec.Indicators {
			if !summary.IndicatorQualifies(ind) {
				continue
			}
			line := fmt.Sprintf("- [%s] %s: %s", display, ind.Number, strings.TrimSpace(ind.CommentText))
			if rows[idx].NextSteps == "" {
				rows[idx].NextSteps = line
			} else {
				rows[idx].NextSteps += "\n" + line
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].TeacherName < rows[j].TeacherName })
	return rows, nil
}

// RecentByMonth returns all observation summaries grouped into month buckets
// for the dashboard listing, newest first; records with no resolvable date
// land in the trailing "Unknown date" bucket.
func (s *SummaryService) RecentByMonth(ctx context.Context) ([]MonthGroup, error) {
	sums, err := s.obsRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}

	sort.SliceStable(sums, func(i, j int) bool {
		var ti, tj int64
		if sums[i].RawDate != nil {
			ti = sums[i].RawDate.UnixMilli()
		}
		if sums[j].RawDate != nil {
			tj = sums[j].RawDate.UnixMilli()
		}
		return ti > tj
	})

	index := make(map[string]int)
	groups := make([]MonthGroup, 0)
	for _, sum := range sums {
		label := observation.UnknownMonthLabel
		if key := observation.MonthKeyOf(sum.RawDate); key != "" {
			label = observation.MonthLabel(key)
		}
		idx, ok := index[label]
		if !ok {
			groups = append(groups, MonthGroup{Label: label})
			idx = len(groups) - 1
			index[label] = idx
		}
		groups[idx].Items = append(groups[idx].Items, sum)
	}
	return groups, nil
}

// MarkSent records "summary communicated" for the (AM, month) pair with the
// current timestamp. Repeated calls overwrite, last write wins. The in-memory
// mark is set before the durable write so the UI stays truthful even when
// storage misbehaves; the configured policy decides whether a failed write is
// logged or surfaced.
func (s *SummaryService) MarkSent(ctx context.Context, am school.AM, monthKey string) (time.Time, error) {
	now := time.Now().UTC()
	memKey := am.Key() + "::" + monthKey

	s.mu.Lock()
	s.sentMem[memKey] = now
	s.mu.Unlock()

	marker := &summary.SentMarker{AMKey: am.Key(), MonthKey: monthKey, SentAt: now}
	if err := s.sentRepo.Upsert(ctx, marker); err != nil {
		if s.policy == PolicySurface {
			return now, fmt.Errorf("sent marker not persisted (in-memory mark kept): %w", err)
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"am_key":    am.Key(),
			"month_key": monthKey,
		}).Warn("Sent marker not persisted, keeping in-memory mark")
	}
	return now, nil
}

// SentAt reports when the (AM, month) summary was marked sent, if ever.
// In-process marks take precedence since they are by definition the latest
// write this instance has seen.
func (s *SummaryService) SentAt(ctx context.Context, am school.AM, monthKey string) (time.Time, bool, error) {
	memKey := am.Key() + "::" + monthKey
	s.mu.Lock()
	if ts, ok := s.sentMem[memKey]; ok {
		s.mu.Unlock()
		return ts, true, nil
	}
	s.mu.Unlock()

	marker, err := s.sentRepo.Get(ctx, am.Key(), monthKey)
	if err != nil {
		if err == idb.ErrSentMarkerNotFound {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read sent marker: %w", err)
	}
	return marker.SentAt, true, nil
}
