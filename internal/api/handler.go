package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/taskflow/internal/db"
	"github.com/terraincognita07/taskflow/internal/realtime"
	"github.com/terraincognita07/taskflow/internal/services"
	"gorm.io/gorm"
)

const (
	authTokenTTL          = 7 * 24 * time.Hour
	streamHeartbeatPeriod = 25 * time.Second
)

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	now          func() time.Time
	hub          *realtime.Hub
	heartbeat    time.Duration
	loginLimiter *attemptLimiter

	repositories *db.Repositories
	authService  *services.AuthService
	templates    *services.TemplateService
	generator    *services.GeneratorService
	instances    *services.InstanceService
	notes        *services.NoteService
	days         *services.DayViewService
	imports      *services.ImportService
	team         *services.TeamService
}

// NewHandler wires services over database. events receives change hints after every committed
// mutation; hub backs the server-sent events stream and may be nil to disable it.
func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool, hub *realtime.Hub, events services.EventPublisher) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("secret key is required")
	}

	handler := &Handler{
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		now:          time.Now,
		hub:          hub,
		heartbeat:    streamHeartbeatPeriod,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database, events), nil
}

func (handler *Handler) withDependencies(database *gorm.DB, events services.EventPublisher) *Handler {
	repos := db.NewRepositories(database)
	guard := services.NewTenantGuard(repos.TaskLists, repos.Tasks, repos.TaskInstances)

	handler.repositories = repos
	handler.authService = services.NewAuthService(repos.Users)
	handler.templates = services.NewTemplateService(guard, repos.TaskLists, repos.Tasks, events)
	handler.generator = services.NewGeneratorService(guard, repos.TaskInstances, events)
	handler.instances = services.NewInstanceService(guard, repos.TaskInstances, repos.Users, events)
	handler.notes = services.NewNoteService(guard, repos.ManagerNotes, events)
	handler.days = services.NewDayViewService(guard, repos.TaskInstances, handler.notes)
	handler.imports = services.NewImportService(guard, repos.TaskLists, repos.Tasks, events)
	handler.team = services.NewTeamService(repos.Users)
	return handler
}

func (handler *Handler) today() time.Time {
	return services.NormalizeDay(handler.now())
}
