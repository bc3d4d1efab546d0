package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kaplack/siget-sub000/internal/database"
	"github.com/kaplack/siget-sub000/internal/middleware"
	"github.com/kaplack/siget-sub000/internal/models"
	"github.com/kaplack/siget-sub000/internal/versioning"
)

func GetProjects(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var projects []models.Project
	if err := database.DB.Where("owner_id = ?", userID).Order("id").Find(&projects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch projects",
		})
	}

	summaries := make([]models.ProjectSummary, len(projects))
	for i, p := range projects {
		var count int64
		database.DB.Model(&models.Activity{}).Where("project_id = ?", p.ID).Count(&count)
		summaries[i] = models.ProjectSummary{
			ID:            p.ID,
			Code:          p.Code,
			Name:          p.Name,
			Status:        p.Status,
			SignatureDate: p.SignatureDate,
			Progress:      p.Progress,
			ActivityCount: int(count),
		}
	}

	return c.JSON(summaries)
}

func CreateProject(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	project := models.Project{
		OwnerID: userID,
		Code:    req.Code,
		Name:    req.Name,
		Status:  models.ProjectStatusDraft,
	}
	if err := database.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func GetProject(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

func UpdateProject(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Code != nil {
		project.Code = *req.Code
	}
	if req.Name != nil {
		if *req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Name cannot be empty",
			})
		}
		project.Name = *req.Name
	}
	if req.SignatureDate != nil {
		d, perr := versioning.ParseDate(*req.SignatureDate)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid signature date",
			})
		}
		project.SignatureDate = d
	}

	if err := database.DB.Save(project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update project",
		})
	}

	return c.JSON(project)
}

func DeleteProject(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}

	// Only drafts and annulled agreements can be removed; anything baselined
	// is part of the audit trail.
	if project.Status != models.ProjectStatusDraft && project.Status != models.ProjectStatusAnnulled {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only draft or annulled projects can be deleted",
		})
	}

	if err := Versioning.DeleteAllActivities(project.ID); err != nil {
		return respondError(c, err)
	}
	if err := database.DB.Delete(project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete project",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func AnnulProject(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := Versioning.AnnulProject(project.ID); err != nil {
		return respondError(c, err)
	}
	database.DB.First(project, project.ID)
	return c.JSON(project)
}

func SetBaseline(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := Versioning.SetBaselineForProject(project.ID); err != nil {
		return respondError(c, err)
	}
	database.DB.First(project, project.ID)
	return c.JSON(project)
}

func GetProjectTree(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}

	kind := c.Query("kind", models.VersionKindTracking)
	roots, orphans, err := Versioning.ProjectTree(project.ID, kind)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"kind":    kind,
		"tree":    roots,
		"orphans": orphans,
	})
}

func GetProjectProgress(c *fiber.Ctx) error {
	project, err := ownedProject(c)
	if err != nil {
		return respondError(c, err)
	}

	progress, err := Versioning.ProjectProgress(project.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"projectId": project.ID,
		"progress":  progress,
	})
}

// ownedProject loads the :id project and enforces ownership. A foreign
// project reads as not found so existence is never leaked.
func ownedProject(c *fiber.Ctx) (*models.Project, error) {
	userID := middleware.GetUserID(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, versioning.ErrValidation
	}

	var project models.Project
	if err := database.DB.First(&project, uint(id)).Error; err != nil {
		return nil, versioning.ErrNotFound
	}
	if project.OwnerID != userID {
		return nil, versioning.ErrNotFound
	}

	return &project, nil
}
