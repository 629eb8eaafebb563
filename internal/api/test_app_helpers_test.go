package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/taskflow/internal/db"
	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "kitchen-secret"

type testEnv struct {
	database *gorm.DB
	app      *fiber.App
	handler  *Handler
	hub      *realtime.Hub
	repos    *db.Repositories
	company  models.Company
	manager  models.User
	member   models.User
	list     models.TaskList
	task     models.Task
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "taskflow-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	hub := realtime.NewHub()
	handler, err := NewHandler(database, "test-secret-key", false, hub, realtime.NewNotifier(hub))
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC) }

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	env := &testEnv{database: database, app: app, handler: handler, hub: hub, repos: handler.repositories}
	env.seed(t)
	return env
}

func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	env.company = models.Company{Name: "Acme"}
	if err := env.repos.Companies.Create(ctx, &env.company); err != nil {
		t.Fatalf("create company: %v", err)
	}
	env.manager = env.createUser(t, env.company.ID, "Boss", "boss@acme.test", models.RoleManager)
	env.member = env.createUser(t, env.company.ID, "Crew", "crew@acme.test", models.RoleMember)

	env.list = models.TaskList{Name: "Kitchen", DefaultFrequency: models.FrequencyDaily, CompanyID: env.company.ID, CreatedByUserID: env.manager.ID}
	tasks := []models.Task{{Title: "Sanitize counters", DefaultFrequency: models.FrequencyDaily, DefaultPriority: models.PriorityNormal, IsActive: true}}
	if err := env.repos.TaskLists.CreateWithTasks(ctx, &env.list, tasks); err != nil {
		t.Fatalf("create list: %v", err)
	}
	env.task = tasks[0]
}

func (env *testEnv) createUser(t *testing.T, companyID uint, name string, email string, role models.Role) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role, CompanyID: companyID}
	if err := env.repos.Users.Create(context.Background(), &user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (env *testEnv) tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := env.handler.buildToken(&user, time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return token
}

func (env *testEnv) request(t *testing.T, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("status = %d, want %d (body %s)", response.StatusCode, want, body)
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
