// internal/infra/telegram/trainer_handlers.go
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"am_summary_bot/internal/app"
	"am_summary_bot/internal/domain/observation"
	"am_summary_bot/internal/domain/school"
	"am_summary_bot/internal/domain/summary"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// draftSession is the trainer's current draft under review. Selecting a new
// month or AM replaces it; /status edits its rows; /mark_sent closes it out.
type draftSession struct {
	monthKey string
	am       school.AM
	rows     []summary.Row
}

type sessionState struct {
	mu  sync.Mutex
	cur *draftSession
}

// RegisterTrainerHandlers registers the summary workflow commands. All
// commands are restricted to the configured trainer.
func RegisterTrainerHandlers(
	ctx context.Context,
	b *telebot.Bot,
	svc *app.SummaryService,
	trainerTelegramID int64,
	trainerName string,
	baseLogger *logrus.Entry,
) {
	session := &sessionState{}

	authorized := func(c telebot.Context, logCtx *logrus.Entry) bool {
		if c.Sender().ID != trainerTelegramID {
			logCtx.Warn("Unauthorized access attempt")
			_ = c.Send("Sorry, this bot only talks to its configured trainer.")
			return false
		}
		return true
	}

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/start", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}
		return c.Send(fmt.Sprintf("Hi %s! I draft your monthly AM observation summaries. Use /help for the command list.", trainerName))
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/help", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}
		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/months`\n - List months that have observations.\n\n")
		helpText.WriteString("`/ams <MM.YYYY>`\n - List Account Managers with observations in that month.\n\n")
		helpText.WriteString("`/draft <MM.YYYY> <am#|email>`\n - Build the summary draft for a month and AM.\n\n")
		helpText.WriteString("`/status <row#> <green|red|none>`\n - Annotate a row of the current draft.\n\n")
		helpText.WriteString("`/mark_sent`\n - Mark the current draft's (AM, month) as communicated.\n\n")
		helpText.WriteString("`/sent <MM.YYYY> <am#|email>`\n - Show when a summary was marked sent.\n\n")
		helpText.WriteString("`/recent`\n - Recent observations grouped by month.\n\n")
		helpText.WriteString("`/add_school <school> | <campus> | <AM name> | <AM email>`\n - Catalogue a school.\n\n")
		helpText.WriteString("`/remove_school <school> | <campus>`\n - Remove a catalogued school.\n\n")
		helpText.WriteString("`/list_schools`\n - Show catalogued schools.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/months", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/months", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		months, err := svc.ListMonths(ctx)
		if err != nil {
			logCtx.WithError(err).Error("Failed to list months")
			return c.Send(fmt.Sprintf("Could not list months: %s", err.Error()))
		}
		if len(months) == 0 {
			return c.Send("No dated observations yet.")
		}

		var response strings.Builder
		response.WriteString("Months with observations:\n")
		for _, m := range months {
			response.WriteString(fmt.Sprintf("%s — %s\n", m, observation.MonthLabel(m)))
		}
		response.WriteString("\nUse /ams <MM.YYYY> to pick one.")
		return c.Send(response.String())
	})

	b.Handle("/ams", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/ams", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /ams <MM.YYYY>")
		}
		monthKey := args[0]
		if _, err := observation.ParseMonthKey(monthKey); err != nil {
			return c.Send(fmt.Sprintf("%q is not a valid month key. Use MM.YYYY, e.g. 11.2025.", monthKey))
		}
		logCtx = logCtx.WithField("month_key", monthKey)

		ams, err := svc.ListAMs(ctx, monthKey)
		if err != nil {
			logCtx.WithError(err).Error("Failed to list AMs")
			return c.Send(fmt.Sprintf("Could not list AMs: %s", err.Error()))
		}

		// Changing the month resets any current draft selection.
		session.mu.Lock()
		session.cur = nil
		session.mu.Unlock()

		if len(ams) == 0 {
			return c.Send(fmt.Sprintf("No AMs with routable observations in %s.", monthKey))
		}

		var response strings.Builder
		fmt.Fprintf(&response, "Account Managers for %s:\n", observation.MonthLabel(monthKey))
		for i, am := range ams {
			fmt.Fprintf(&response, "%d. %s (%s)", i+1, am.Name, am.Email)
			if ts, sent, err := svc.SentAt(ctx, am, monthKey); err == nil && sent {
				fmt.Fprintf(&response, " — sent %s", ts.Format("02.01.2006 15:04"))
			}
			response.WriteString("\n")
		}
		fmt.Fprintf(&response, "\nUse /draft %s <number or email> to build a draft.", monthKey)
		return c.Send(response.String())
	})

	b.Handle("/draft", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/draft", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		args := c.Args()
		if len(args) != 2 {
			return c.Send("Usage: /draft <MM.YYYY> <am number or email>")
		}
		monthKey := args[0]
		if _, err := observation.ParseMonthKey(monthKey); err != nil {
			return c.Send(fmt.Sprintf("%q is not a valid month key. Use MM.YYYY, e.g. 11.2025.", monthKey))
		}

		am, err := resolveAM(ctx, svc, monthKey, args[1])
		if err != nil {
			logCtx.WithError(err).Warn("Could not resolve AM")
			return c.Send(err.Error())
		}
		logCtx = logCtx.WithFields(logrus.Fields{"month_key": monthKey, "am_email": am.Email})

		rows, err := svc.BuildSummary(ctx, monthKey, am)
		if err != nil {
			logCtx.WithError(err).Error("Failed to build summary")
			return c.Send(fmt.Sprintf("Could not build the summary: %s", err.Error()))
		}

		body := summary.ComposeEmailBody(am.Name, monthKey, rows)
		if body == "" {
			session.mu.Lock()
			session.cur = nil
			session.mu.Unlock()
			return c.Send(fmt.Sprintf("Nothing to compose for %s / %s — no routable observations that month.", am.Name, monthKey))
		}

		session.mu.Lock()
		session.cur = &draftSession{monthKey: monthKey, am: am, rows: rows}
		session.mu.Unlock()
		logCtx.WithField("row_count", len(rows)).Info("Draft built")

		var response strings.Builder
		response.WriteString(body)
		if ts, sent, err := svc.SentAt(ctx, am, monthKey); err == nil && sent {
			fmt.Fprintf(&response, "\n⚠ Already marked sent on %s.", ts.Format("02.01.2006 15:04"))
		}
		response.WriteString("\nAnnotate rows with /status <row#> <green|red|none>, then /mark_sent once the email is out.")
		return c.Send(response.String())
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/status", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		args := c.Args()
		if len(args) != 2 {
			return c.Send("Usage: /status <row#> <green|red|none>")
		}

		rowNum, err := strconv.Atoi(args[0])
		if err != nil {
			return c.Send("Row number must be a number.")
		}
		var status summary.RowStatus
		switch strings.ToLower(args[1]) {
		case "green":
			status = summary.RowStatusGreen
		case "red":
			status = summary.RowStatusRed
		case "none":
			status = summary.RowStatusNone
		default:
			return c.Send("Status must be green, red or none.")
		}

		session.mu.Lock()
		defer session.mu.Unlock()
		if session.cur == nil {
			return c.Send("No draft in progress. Build one with /draft first.")
		}
		if rowNum < 1 || rowNum > len(session.cur.rows) {
			return c.Send(fmt.Sprintf("Row %d is out of range; the draft has %d row(s).", rowNum, len(session.cur.rows)))
		}
		session.cur.rows[rowNum-1].Status = status
		logCtx.WithFields(logrus.Fields{"row": rowNum, "status": string(status)}).Info("Row annotated")

		body := summary.ComposeEmailBody(session.cur.am.Name, session.cur.monthKey, session.cur.rows)
		return c.Send(body)
	})

	b.Handle("/mark_sent", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/mark_sent", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		session.mu.Lock()
		cur := session.cur
		session.mu.Unlock()
		if cur == nil {
			return c.Send("No draft in progress. Build one with /draft first.")
		}

		ts, err := svc.MarkSent(ctx, cur.am, cur.monthKey)
		if err != nil {
			logCtx.WithError(err).Error("Failed to persist sent marker")
			return c.Send(fmt.Sprintf("Marked in this session, but the durable write failed: %s", err.Error()))
		}
		logCtx.WithFields(logrus.Fields{"am_email": cur.am.Email, "month_key": cur.monthKey}).Info("Summary marked sent")
		return c.Send(fmt.Sprintf("Marked %s / %s as sent at %s.", cur.am.Name, cur.monthKey, ts.Format("02.01.2006 15:04")))
	})

	b.Handle("/sent", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/sent", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		args := c.Args()
		if len(args) != 2 {
			return c.Send("Usage: /sent <MM.YYYY> <am number or email>")
		}
		monthKey := args[0]
		if _, err := observation.ParseMonthKey(monthKey); err != nil {
			return c.Send(fmt.Sprintf("%q is not a valid month key. Use MM.YYYY, e.g. 11.2025.", monthKey))
		}
		am, err := resolveAM(ctx, svc, monthKey, args[1])
		if err != nil {
			return c.Send(err.Error())
		}

		ts, sent, err := svc.SentAt(ctx, am, monthKey)
		if err != nil {
			logCtx.WithError(err).Error("Failed to read sent state")
			return c.Send(fmt.Sprintf("Could not read sent state: %s", err.Error()))
		}
		if !sent {
			return c.Send(fmt.Sprintf("The %s summary for %s has not been marked sent.", monthKey, am.Name))
		}
		return c.Send(fmt.Sprintf("The %s summary for %s was marked sent on %s.", monthKey, am.Name, ts.Format("02.01.2006 15:04")))
	})

	b.Handle("/recent", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{"handler": "/recent", "sender_id": c.Sender().ID})
		logCtx.Info("Command received")
		if !authorized(c, logCtx) {
			return nil
		}

		groups, err := svc.RecentByMonth(ctx)
		if err != nil {
			logCtx.WithError(err).Error("Failed to list recent observations")
			return c.Send(fmt.Sprintf("Could not list observations: %s", err.Error()))
		}
		if len(groups) == 0 {
			return c.Send("No observations stored yet.")
		}

		var response strings.Builder
		for _, g := range groups {
			fmt.Fprintf(&response, "— %s —\n", g.Label)
			for _, o := range g.Items {
				date := "no date"
				if o.RawDate != nil {
					date = observation.DisplayDate(*o.RawDate)
				}
				fmt.Fprintf(&response, "%s · %s (%s) · %s · %d/%d indicators · %s\n",
					o.TeacherName, o.SchoolName, o.Campus, date, o.Progress, o.TotalIndicators, o.StatusColor)
			}
		}
		return c.Send(response.String())
	})
}

// resolveAM maps a 1-based index from the last /ams listing or an exact email
// to an AM that actually has observations in the month.
func resolveAM(ctx context.Context, svc *app.SummaryService, monthKey, arg string) (school.AM, error) {
	ams, err := svc.ListAMs(ctx, monthKey)
	if err != nil {
		return school.AM{}, fmt.Errorf("could not list AMs for %s: %w", monthKey, err)
	}
	if len(ams) == 0 {
		return school.AM{}, fmt.Errorf("no AMs with routable observations in %s", monthKey)
	}

	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(ams) {
			return school.AM{}, fmt.Errorf("AM number %d is out of range; %s has %d AM(s), see /ams %s", n, monthKey, len(ams), monthKey)
		}
		return ams[n-1], nil
	}

	for _, am := range ams {
		if am.Email == arg {
			return am, nil
		}
	}
	return school.AM{}, fmt.Errorf("no AM with email %q in %s, see /ams %s", arg, monthKey, monthKey)
}
