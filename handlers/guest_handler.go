package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"guestboard/middleware"
	"guestboard/models"
	"guestboard/services"
)

const maxGuestListSize = 10 * 1024 * 1024 // 10MB

// UploadGuestList imports a CSV guest list for an event. Every row in the
// file becomes one guest row; duplicates are kept on purpose since raw row
// counts feed per-event totals.
func UploadGuestList(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	event, err := services.GetEvent(c.Context(), userID, eventID)
	if err != nil {
		slog.Error("Failed to get event for upload", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get event",
		})
	}
	if event == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	// Get uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if file.Size > maxGuestListSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File size exceeds 10MB limit",
		})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type. Supported types: .csv",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer src.Close()

	header, rows, err := services.ParseGuestCSV(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to parse CSV: %v", err),
		})
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No guest rows found in file",
		})
	}

	guests := make([]models.Guest, 0, len(rows))
	for _, row := range rows {
		guest := services.NormalizeGuestRow(header, row)
		guest.EventID = eventID
		guest.UserID = userID
		guests = append(guests, guest)
	}

	if err := services.InsertGuests(c.Context(), guests); err != nil {
		slog.Error("Failed to insert guests", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to import guests",
		})
	}

	fileRecord, err := services.SaveGuestListFile(c.Context(), userID, eventID, file.Filename, file.Size, len(guests))
	if err != nil {
		slog.Error("Failed to save file record", "error", err, "eventID", eventID)
	}

	slog.Info("Guest list imported",
		"userID", userID,
		"eventID", eventID,
		"filename", file.Filename,
		"guestCount", len(guests),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Guest list imported",
		"guest_count": len(guests),
		"file":        fileRecord,
	})
}

func GetEventGuests(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	guests, err := services.GetGuestsByEvent(c.Context(), userID, eventID)
	if err != nil {
		slog.Error("Failed to get event guests", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get guests",
		})
	}

	return c.JSON(fiber.Map{
		"guests": guests,
		"total":  len(guests),
	})
}

func DeleteEventGuests(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	deleted, err := services.DeleteGuestsByEvent(c.Context(), userID, eventID)
	if err != nil {
		slog.Error("Failed to delete event guests", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete guests",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Guests deleted",
		"deleted": deleted,
	})
}

func GetGuestListFiles(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	files, err := services.GetGuestListFiles(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get guest list files", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get guest list files",
		})
	}

	return c.JSON(fiber.Map{
		"files": files,
		"total": len(files),
	})
}
