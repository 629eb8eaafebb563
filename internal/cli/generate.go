package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/taskflow/internal/services"
)

// RunGenerateCommand materializes one company's templates for a day, acting as its first manager.
// An empty rawDate means today.
func RunGenerateCommand(dbPath string, companyID uint, rawDate string, now time.Time, out io.Writer) error {
	if companyID == 0 {
		return errors.New("--company is required")
	}
	day := services.NormalizeDay(now)
	if rawDate != "" {
		parsed, err := services.ParseDay(rawDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", rawDate)
		}
		day = parsed
	}

	rt, err := openRuntime(dbPath)
	if err != nil {
		return err
	}
	defer rt.Close()
	ctx := context.Background()

	manager, err := rt.repos.Users.FirstManager(ctx, companyID)
	if err != nil {
		return fmt.Errorf("company %d has no manager: %w", companyID, err)
	}

	created, err := rt.generator.Generate(ctx, &manager, companyID, day)
	if err != nil {
		return fmt.Errorf("generate tasks: %w", err)
	}
	fmt.Fprintf(out, "Created %d task(s) for company %d on %s\n", created, companyID, services.FormatDay(day))
	return nil
}
