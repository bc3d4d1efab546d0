package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kaplack/siget-sub000/internal/versioning"
	"github.com/kaplack/siget-sub000/internal/wbs"
)

type reconcileRequest struct {
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Duration    *int    `json:"duration"`
	EditedField string  `json:"editedField"` // start | end | duration | ""
}

// ReconcileSchedule resolves a (start, end, duration) triple for the edit
// grid without persisting anything. The client calls it on every date or
// duration cell edit before buffering the change locally.
func ReconcileSchedule(c *fiber.Ctx) error {
	var req reconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	fields := versioning.Fields{Duration: req.Duration}
	if err := parseDates(req.StartDate, req.EndDate, &fields); err != nil {
		return respondError(c, err)
	}

	triple := wbs.ReconcileDateTriple(wbs.DateTriple{
		StartDate: fields.StartDate,
		EndDate:   fields.EndDate,
		Duration:  fields.Duration,
	}, req.EditedField, Versioning.Holidays())

	return c.JSON(fiber.Map{
		"startDate": triple.StartDate,
		"endDate":   triple.EndDate,
		"duration":  triple.Duration,
	})
}
