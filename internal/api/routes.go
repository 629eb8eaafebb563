package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	lists := api.Group("/task-lists", handler.AuthRequired)
	lists.Get("", handler.ListTaskLists)
	lists.Post("", handler.ManagerOnly, handler.CreateTaskList)
	lists.Post("/import", handler.ManagerOnly, handler.ImportNewList)
	lists.Put("/:id", handler.UpdateTaskList)
	lists.Delete("/:id", handler.DeleteTaskList)
	lists.Post("/:id/tasks", handler.CreateTask)
	lists.Post("/:id/generate", handler.GenerateForList)
	lists.Post("/:id/import", handler.ImportIntoList)

	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Put("/:id", handler.UpdateTask)
	tasks.Delete("/:id", handler.DeleteTask)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("/:date", handler.GetDay)
	days.Post("/:date/generate", handler.GenerateDay)
	days.Put("/:date/note", handler.UpsertDayNote)

	instances := api.Group("/instances", handler.AuthRequired)
	instances.Patch("/:id", handler.UpdateInstance)
	instances.Put("/:id/assignee", handler.AssignInstance)

	team := api.Group("/team", handler.AuthRequired)
	team.Get("", handler.ListTeam)
	team.Post("", handler.ManagerOnly, handler.InviteUser)

	api.Get("/realtime/stream", handler.AuthRequired, handler.Stream)
}
