package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kaplack/siget-sub000/internal/handlers"
	"github.com/kaplack/siget-sub000/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)

	projects := protected.Group("/projects")
	projects.Get("/", handlers.GetProjects)
	projects.Post("/", handlers.CreateProject)
	projects.Get("/:id", handlers.GetProject)
	projects.Put("/:id", handlers.UpdateProject)
	projects.Delete("/:id", handlers.DeleteProject)
	projects.Post("/:id/annul", handlers.AnnulProject)

	// Baseline + derived views
	projects.Post("/:id/baseline", handlers.SetBaseline)
	projects.Get("/:id/tree", handlers.GetProjectTree)
	projects.Get("/:id/progress", handlers.GetProjectProgress)

	// WBS drafts
	projects.Post("/:id/activities", handlers.CreateActivity)
	projects.Delete("/:id/activities", handlers.DeleteAllActivities)

	activities := protected.Group("/activities")
	activities.Put("/:id", handlers.UpdateActivity)
	activities.Post("/:id/move", handlers.MoveActivity)
	activities.Post("/:id/reorder", handlers.ReorderActivity)
	activities.Delete("/:id", handlers.DeleteActivity)
	activities.Get("/:id/versions", handlers.GetActivityVersions)
	activities.Post("/:id/versions", handlers.AddTrackingVersion)

	// Stateless date-triple reconciliation for the edit grid
	protected.Post("/schedule/reconcile", handlers.ReconcileSchedule)
}
