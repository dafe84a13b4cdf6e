package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"guestboard/middleware"
	"guestboard/services"
)

type EventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
}

func CreateEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Date) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and date are required",
		})
	}

	event, err := services.CreateEvent(c.Context(), userID, req.Title, req.Date, req.Venue, req.Description)
	if err != nil {
		slog.Error("Failed to create event", "error", err, "userID", userID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"event": event,
	})
}

func GetEvents(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	events, err := services.GetEventsByUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get events", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get events",
		})
	}

	return c.JSON(fiber.Map{
		"events": events,
		"total":  len(events),
	})
}

func GetEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	event, err := services.GetEvent(c.Context(), userID, eventID)
	if err != nil {
		slog.Error("Failed to get event", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get event",
		})
	}
	if event == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	return c.JSON(fiber.Map{
		"event": event,
	})
}

func UpdateEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Date) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and date are required",
		})
	}

	event, err := services.UpdateEvent(c.Context(), userID, eventID, req.Title, req.Date, req.Venue, req.Description)
	if err != nil {
		slog.Error("Failed to update event", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if event == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	return c.JSON(fiber.Map{
		"event": event,
	})
}

func DeleteEvent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	if err := services.DeleteEvent(c.Context(), userID, eventID); err != nil {
		slog.Error("Failed to delete event", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Event deleted",
	})
}
