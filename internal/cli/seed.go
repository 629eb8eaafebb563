package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoManagerEmail = "maya.manager@example.com"
	demoMemberEmail  = "miles.member@example.com"
	demoPassword     = "password123"
)

type demoTask struct {
	title       string
	description string
	category    string
	frequency   models.Frequency
	priority    models.Priority
	assignee    string
}

type demoList struct {
	name        string
	description string
	location    string
	frequency   models.Frequency
	tasks       []demoTask
}

var demoLists = []demoList{
	{
		name:        "Daily Kitchen Checklist",
		description: "Opening duties for the morning crew",
		location:    "Kitchen",
		frequency:   models.FrequencyDaily,
		tasks: []demoTask{
			{title: "Sanitize all prep counters", description: "Use food-safe sanitizer and log completion", category: "cleaning", frequency: models.FrequencyDaily, priority: models.PriorityHigh, assignee: demoMemberEmail},
			{title: "Prep produce bins", description: "Wash and restock salad bar bins", category: "prep", frequency: models.FrequencyDaily, priority: models.PriorityNormal, assignee: demoMemberEmail},
		},
	},
	{
		name:        "Weekly Food Safety",
		description: "Deep cleaning and temperature checks",
		frequency:   models.FrequencyWeekly,
		tasks: []demoTask{
			{title: "Record walk-in temperatures", description: "Log high/low and flag issues", category: "safety", frequency: models.FrequencyWeekly, priority: models.PriorityHigh, assignee: demoManagerEmail},
		},
	},
}

// RunSeedCommand loads the "Acme Kitchens" demo tenant with today's occurrences and a note.
// It refuses to run twice against the same database.
func RunSeedCommand(dbPath string, now time.Time, out io.Writer) error {
	rt, err := openRuntime(dbPath)
	if err != nil {
		return err
	}
	defer rt.Close()
	ctx := context.Background()

	exists, err := rt.repos.Users.ExistsByNormalizedEmail(ctx, demoManagerEmail)
	if err != nil {
		return fmt.Errorf("check demo data: %w", err)
	}
	if exists {
		return errors.New("demo data already present")
	}

	company := models.Company{Name: "Acme Kitchens"}
	if err := rt.repos.Companies.Create(ctx, &company); err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	users := map[string]*models.User{
		demoManagerEmail: {Name: "Maya Manager", Email: demoManagerEmail, PasswordHash: string(hash), Role: models.RoleManager, CompanyID: company.ID},
		demoMemberEmail:  {Name: "Miles Member", Email: demoMemberEmail, PasswordHash: string(hash), Role: models.RoleMember, CompanyID: company.ID},
	}
	for _, email := range []string{demoManagerEmail, demoMemberEmail} {
		if err := rt.repos.Users.Create(ctx, users[email]); err != nil {
			return fmt.Errorf("create %s: %w", email, err)
		}
	}
	manager := users[demoManagerEmail]

	assignees := make(map[uint]uint)
	for _, list := range demoLists {
		created, err := rt.templates.CreateTaskList(ctx, manager, services.TaskListInput{
			Name:             list.name,
			Description:      &list.description,
			Location:         &list.location,
			DefaultFrequency: list.frequency,
		})
		if err != nil {
			return fmt.Errorf("create list %q: %w", list.name, err)
		}
		for _, task := range list.tasks {
			template, err := rt.templates.CreateTask(ctx, manager, created.ID, services.TaskInput{
				Title:            task.title,
				Description:      &task.description,
				Category:         &task.category,
				DefaultFrequency: task.frequency,
				DefaultPriority:  task.priority,
			})
			if err != nil {
				return fmt.Errorf("create task %q: %w", task.title, err)
			}
			assignees[template.ID] = users[task.assignee].ID
		}
	}

	day := services.NormalizeDay(now)
	if _, err := rt.generator.Generate(ctx, manager, company.ID, day); err != nil {
		return fmt.Errorf("generate demo day: %w", err)
	}
	dayStart, dayEnd := services.DayRange(day)
	instances, err := rt.repos.TaskInstances.ListByCompanyDay(ctx, company.ID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("load demo day: %w", err)
	}
	for _, instance := range instances {
		assigneeID := assignees[instance.TaskID]
		if _, err := rt.instances.AssignInstance(ctx, manager, instance.ID, &assigneeID); err != nil {
			return fmt.Errorf("assign demo task: %w", err)
		}
	}

	if _, err := rt.notes.UpsertNote(ctx, manager, company.ID, day, "Focus on cooler temps and prep speed today."); err != nil {
		return fmt.Errorf("create demo note: %w", err)
	}

	fmt.Fprintf(out, "Seeded %s (company %d). Accounts:\n", company.Name, company.ID)
	fmt.Fprintf(out, "  Manager: %s / %s\n", demoManagerEmail, demoPassword)
	fmt.Fprintf(out, "  Member:  %s / %s\n", demoMemberEmail, demoPassword)
	return nil
}
