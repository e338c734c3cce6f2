package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"am_summary_bot/internal/domain/observation"
	"am_summary_bot/internal/domain/school"
	domainTelegram "am_summary_bot/internal/domain/telegram"

	"github.com/robfig/cron/v3"
)

// SummaryReader is the slice of the summary service the nudge job needs.
type SummaryReader interface {
	ListAMs(ctx context.Context, monthKey string) ([]school.AM, error)
	SentAt(ctx context.Context, am school.AM, monthKey string) (time.Time, bool, error)
}

// NudgeScheduler runs a daily cron job that, on the last day of the month,
// checks which Account Managers still have no sent marker for the current
// month and nudges the trainer over Telegram.
type NudgeScheduler struct {
	cronEngine        *cron.Cron
	summaries         SummaryReader
	telegramClient    domainTelegram.Client
	trainerTelegramID int64
	logger            *log.Logger
	cronSpecDaily     string // e.g. "0 9 * * *"; the job itself checks for the last day
}

func NewNudgeScheduler(
	summaries SummaryReader,
	telegramClient domainTelegram.Client,
	trainerTelegramID int64,
	logger *log.Logger,
	cronSpecDaily string,
) *NudgeScheduler {
	return &NudgeScheduler{
		cronEngine:        cron.New(cron.WithLocation(time.Local)),
		summaries:         summaries,
		telegramClient:    telegramClient,
		trainerTelegramID: trainerTelegramID,
		logger:            logger,
		cronSpecDaily:     cronSpecDaily,
	}
}

func (s *NudgeScheduler) Start() {
	s.logger.Println("INFO: Starting month-end nudge scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDaily, func() {
		now := time.Now()
		firstOfNextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		lastDayOfCurrentMonth := firstOfNextMonth.AddDate(0, 0, -1)

		if now.Day() != lastDayOfCurrentMonth.Day() {
			s.logger.Printf("INFO: Today (Day %d) is not the last day of the month (Day %d). Skipping nudge.", now.Day(), lastDayOfCurrentMonth.Day())
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.nudgeUnsent(ctx, observation.MonthKey(now)); err != nil {
			s.logger.Printf("ERROR: Month-end nudge failed: %v", err)
		}
	})
	if err != nil {
		s.logger.Fatalf("FATAL: Could not add month-end nudge cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Println("INFO: Month-end nudge scheduler started.")
}

func (s *NudgeScheduler) nudgeUnsent(ctx context.Context, monthKey string) error {
	ams, err := s.summaries.ListAMs(ctx, monthKey)
	if err != nil {
		return fmt.Errorf("failed to list AMs for %s: %w", monthKey, err)
	}

	var unsent []school.AM
	for _, am := range ams {
		_, sent, err := s.summaries.SentAt(ctx, am, monthKey)
		if err != nil {
			s.logger.Printf("ERROR: Could not read sent state for %s / %s: %v", am.Name, monthKey, err)
			continue
		}
		if !sent {
			unsent = append(unsent, am)
		}
	}

	if len(unsent) == 0 {
		s.logger.Printf("INFO: All AM summaries for %s are marked sent. No nudge needed.", monthKey)
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Month-end reminder: %d AM summary draft(s) for %s not marked sent yet:\n", len(unsent), monthKey)
	for _, am := range unsent {
		fmt.Fprintf(&msg, "- %s (%s)\n", am.Name, am.Email)
	}
	msg.WriteString("\nUse /draft " + monthKey + " <am> to review and /mark_sent when done.")

	if err := s.telegramClient.SendMessage(s.trainerTelegramID, msg.String(), nil); err != nil {
		return fmt.Errorf("failed to send nudge message: %w", err)
	}
	s.logger.Printf("INFO: Nudged trainer about %d unsent AM summaries for %s.", len(unsent), monthKey)
	return nil
}

func (s *NudgeScheduler) Stop() {
	s.logger.Println("INFO: Stopping month-end nudge scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Println("INFO: Month-end nudge scheduler gracefully stopped.")
}
