package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kaplack/siget-sub000/internal/database"
	"github.com/kaplack/siget-sub000/internal/middleware"
	"github.com/kaplack/siget-sub000/internal/models"
	"github.com/kaplack/siget-sub000/internal/versioning"
)

func CreateActivity(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	fields := versioning.Fields{
		Assignee:     req.Assignee,
		Predecessors: req.Predecessors,
		Comment:      req.Comment,
		Duration:     req.Duration,
	}
	if req.Name != "" {
		fields.Name = &req.Name
	}
	if req.ParentID != 0 {
		fields.ParentID = &req.ParentID
	}
	if req.SiblingOrder != 0 {
		fields.SiblingOrder = &req.SiblingOrder
	}
	if err := parseDates(req.StartDate, req.EndDate, &fields); err != nil {
		return respondError(c, err)
	}

	version, err := Versioning.CreateDraft(project.ID, fields)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(version)
}

func UpdateActivity(c *fiber.Ctx) error {
	activityID, err := ownedActivity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	fields := versioning.Fields{
		Name:         req.Name,
		ParentID:     req.ParentID,
		Duration:     req.Duration,
		Assignee:     req.Assignee,
		Predecessors: req.Predecessors,
		Comment:      req.Comment,
	}
	if err := parseDates(req.StartDate, req.EndDate, &fields); err != nil {
		return respondError(c, err)
	}

	version, err := Versioning.UpdateDraft(activityID, fields, req.EditedField)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(version)
}

func MoveActivity(c *fiber.Ctx) error {
	activityID, err := ownedActivity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.MoveActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	version, err := Versioning.MoveActivity(activityID, req.NewParentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(version)
}

func ReorderActivity(c *fiber.Ctx) error {
	activityID, err := ownedActivity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ReorderActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	version, err := Versioning.ReorderActivity(activityID, req.SiblingOrder)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(version)
}

func DeleteActivity(c *fiber.Ctx) error {
	activityID, err := ownedActivity(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := Versioning.DeleteActivity(activityID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func DeleteAllActivities(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := Versioning.DeleteAllActivities(project.ID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func GetActivityVersions(c *fiber.Ctx) error {
	activityID, err := ownedActivity(c)
	if err != nil {
		return respondError(c, err)
	}

	versions, err := Versioning.ListVersions(activityID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(versions)
}

func AddTrackingVersion(c *fiber.Ctx) error {
	activityID, err := ownedActivity(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.TrackingVersionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	fields := versioning.Fields{
		Duration:          req.Duration,
		Assignee:          req.Assignee,
		Predecessors:      req.Predecessors,
		Comment:           req.Comment,
		Progress:          req.Progress,
		Justification:     req.Justification,
		CorrectiveActions: req.CorrectiveActions,
	}
	if err := parseDates(req.StartDate, req.EndDate, &fields); err != nil {
		return respondError(c, err)
	}

	version, err := Versioning.AddTrackingVersion(activityID, fields, req.EditedField)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(version)
}

// parseDates converts YYYY-MM-DD request strings into the fields struct.
func parseDates(start, end *string, fields *versioning.Fields) error {
	if start != nil {
		d, err := versioning.ParseDate(*start)
		if err != nil {
			return err
		}
		fields.StartDate = d
	}
	if end != nil {
		d, err := versioning.ParseDate(*end)
		if err != nil {
			return err
		}
		fields.EndDate = d
	}
	return nil
}

// ownedActivity resolves the :id activity and checks the caller owns its
// project.
func ownedActivity(c *fiber.Ctx) (uint, error) {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, versioning.ErrValidation
	}

	var activity models.Activity
	if err := database.DB.First(&activity, uint(id)).Error; err != nil {
		return 0, versioning.ErrNotFound
	}

	var project models.Project
	if err := database.DB.First(&project, activity.ProjectID).Error; err != nil {
		return 0, versioning.ErrNotFound
	}
	if project.OwnerID != userID {
		return 0, versioning.ErrNotFound
	}

	return activity.ID, nil
}
