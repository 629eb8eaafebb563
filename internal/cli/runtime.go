package cli

import (
	"fmt"

	"github.com/terraincognita07/taskflow/internal/db"
	"github.com/terraincognita07/taskflow/internal/services"
	"gorm.io/gorm"
)

// runtime bundles the services an operator command needs. Operator commands never publish
// realtime events: connected viewers pick the changes up on their next read.
type runtime struct {
	database  *gorm.DB
	repos     *db.Repositories
	auth      *services.AuthService
	templates *services.TemplateService
	generator *services.GeneratorService
	instances *services.InstanceService
	notes     *services.NoteService
}

func openRuntime(dbPath string) (*runtime, error) {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	guard := services.NewTenantGuard(repos.TaskLists, repos.Tasks, repos.TaskInstances)
	return &runtime{
		database:  database,
		repos:     repos,
		auth:      services.NewAuthService(repos.Users),
		templates: services.NewTemplateService(guard, repos.TaskLists, repos.Tasks, nil),
		generator: services.NewGeneratorService(guard, repos.TaskInstances, nil),
		instances: services.NewInstanceService(guard, repos.TaskInstances, repos.Users, nil),
		notes:     services.NewNoteService(guard, repos.ManagerNotes, nil),
	}, nil
}

func (rt *runtime) Close() {
	if sqlDB, err := rt.database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
