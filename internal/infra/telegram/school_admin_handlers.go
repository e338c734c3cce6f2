// internal/infra/telegram/school_admin_handlers.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"am_summary_bot/internal/app"
	idb "am_summary_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterSchoolAdminHandlers registers the directory management commands.
// School and campus names contain spaces, so arguments are pipe-delimited:
//
//	/add_school VSK Sunshine | Cổ Nhuế | Vivian | vivian.pham@grapeseed.com
func RegisterSchoolAdminHandlers(
	ctx context.Context,
	b *telebot.Bot,
	adminService *app.SchoolAdminService,
	baseLogger *logrus.Entry,
) {
	b.Handle("/add_school", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/add_school",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		parts := splitPipeArgs(c.Message().Payload)
		if len(parts) != 4 {
			handlerLogger.WithField("parts_count", len(parts)).Warn("Invalid command format")
			return c.Send("Usage: /add_school <school> | <campus> | <AM name> | <AM email>")
		}

		info, err := adminService.AddSchool(ctx, c.Sender().ID, parts[0], parts[1], parts[2], parts[3])
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrNotAuthorized:
				logWithError.Warn("Sender is not the trainer")
				return c.Send("Sorry, this bot only talks to its configured trainer.")
			case app.ErrSchoolAlreadyExists:
				logWithError.Warn("School already exists")
				return c.Send(fmt.Sprintf("%s (%s) is already catalogued.", parts[0], parts[1]))
			default:
				logWithError.Error("Failed to add school")
				return c.Send(fmt.Sprintf("Could not add the school: %s", err.Error()))
			}
		}

		handlerLogger.WithFields(logrus.Fields{
			"school_id": info.ID,
			"school":    info.SchoolName,
			"campus":    info.Campus,
		}).Info("School added successfully")
		return c.Send(fmt.Sprintf("Added %s (%s), routed to %s <%s>.", info.SchoolName, info.Campus, info.AMName, info.AMEmail))
	})

	b.Handle("/remove_school", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/remove_school",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		parts := splitPipeArgs(c.Message().Payload)
		if len(parts) != 2 {
			return c.Send("Usage: /remove_school <school> | <campus>")
		}

		err := adminService.RemoveSchool(ctx, c.Sender().ID, parts[0], parts[1])
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrNotAuthorized:
				logWithError.Warn("Sender is not the trainer")
				return c.Send("Sorry, this bot only talks to its configured trainer.")
			case idb.ErrSchoolNotFound:
				logWithError.Warn("School to remove not found")
				return c.Send(fmt.Sprintf("%s (%s) is not in the catalogue.", parts[0], parts[1]))
			default:
				logWithError.Error("Failed to remove school")
				return c.Send(fmt.Sprintf("Could not remove the school: %s", err.Error()))
			}
		}

		handlerLogger.WithFields(logrus.Fields{"school": parts[0], "campus": parts[1]}).Info("School removed successfully")
		return c.Send(fmt.Sprintf("Removed %s (%s). Its observations now fall back to the built-in list, if present there.", parts[0], parts[1]))
	})

	b.Handle("/list_schools", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/list_schools",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		schools, err := adminService.ListSchools(ctx, c.Sender().ID)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			if err == app.ErrNotAuthorized {
				logWithError.Warn("Sender is not the trainer")
				return c.Send("Sorry, this bot only talks to its configured trainer.")
			}
			logWithError.Error("Failed to list schools")
			return c.Send(fmt.Sprintf("Could not list schools: %s", err.Error()))
		}

		if len(schools) == 0 {
			handlerLogger.Info("No catalogued schools")
			return c.Send("No schools catalogued yet; aggregation uses the built-in master list.")
		}

		handlerLogger.WithField("school_count", len(schools)).Info("Successfully retrieved school list")
		var response strings.Builder
		response.WriteString("Catalogued schools:\n")
		for _, s := range schools {
			response.WriteString(fmt.Sprintf("%s (%s) → %s <%s>\n", s.SchoolName, s.Campus, s.AMName, s.AMEmail))
		}
		return c.Send(response.String())
	})
}

func splitPipeArgs(payload string) []string {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	raw := strings.Split(payload, "|")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}
	return parts
}
