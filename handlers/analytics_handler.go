package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"guestboard/analytics"
	"guestboard/middleware"
	"guestboard/services"
)

// GetDashboardAnalytics returns the dashboard KPIs and chart series across all
// of the user's events. Everything is recomputed from the full snapshot on
// each request; nothing derived is persisted.
func GetDashboardAnalytics(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	events, err := services.GetEventsByUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to load events for analytics", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load events",
		})
	}

	guests, err := services.GetGuestsByUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to load guests for analytics", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load guests",
		})
	}

	topGuests := analytics.ComputeTopRepeatGuests(events, guests)
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 && limit < len(topGuests) {
			topGuests = topGuests[:limit]
		}
	}

	return c.JSON(fiber.Map{
		"kpis":               analytics.ComputeDashboardKPIs(events, guests),
		"event_guest_counts": analytics.ComputeEventGuestCounts(events, guests),
		"new_vs_returning":   analytics.ComputeNewVsReturning(events, guests),
		"loyalty_buckets":    analytics.ComputeLoyaltyBuckets(events, guests),
		"top_repeat_guests":  topGuests,
	})
}

// GetEventAnalytics returns the KPIs for a single event
func GetEventAnalytics(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	eventID := c.Params("eventID")

	event, err := services.GetEvent(c.Context(), userID, eventID)
	if err != nil {
		slog.Error("Failed to get event for analytics", "error", err, "eventID", eventID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get event",
		})
	}
	if event == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Event not found",
		})
	}

	allEvents, err := services.GetEventsByUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to load events for analytics", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load events",
		})
	}

	allGuests, err := services.GetGuestsByUser(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to load guests for analytics", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load guests",
		})
	}

	kpis, err := analytics.ComputeEventKPIs(*event, allEvents, allGuests)
	if err != nil {
		if errors.Is(err, analytics.ErrEventNotFound) {
			slog.Error("Event missing from its own event list", "eventID", eventID, "userID", userID)
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Event is not part of the loaded event list",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute event analytics",
		})
	}

	return c.JSON(fiber.Map{
		"event": event,
		"kpis":  kpis,
	})
}
