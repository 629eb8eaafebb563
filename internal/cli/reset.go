package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/taskflow/internal/services"
)

// RunResetPasswordCommand replaces a user's password. With prompt set the new password is read
// from stdin without echo; otherwise a temporary one is generated and printed.
func RunResetPasswordCommand(dbPath string, email string, prompt bool, stdin *os.File, out io.Writer) error {
	if services.NormalizeAuthEmail(email) == "" {
		return errors.New("a valid --email is required")
	}

	rt, err := openRuntime(dbPath)
	if err != nil {
		return err
	}
	defer rt.Close()
	ctx := context.Background()

	if prompt {
		passwords, err := newPasswordPrompt(stdin, out)
		if err != nil {
			return err
		}
		password, err := passwords.newPasswordTwice()
		if err != nil {
			return err
		}
		if err := rt.auth.SetPassword(ctx, email, password); err != nil {
			return describeUserError(email, err)
		}
		fmt.Fprintln(out, "Password updated.")
		return nil
	}

	temporary, err := rt.auth.ResetPassword(ctx, email)
	if err != nil {
		return describeUserError(email, err)
	}
	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporary)
	return nil
}

func describeUserError(email string, err error) error {
	var inputErr *services.InputError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fmt.Errorf("user %s not found", email)
	case errors.As(err, &inputErr):
		return errors.New(inputErr.Message)
	default:
		return err
	}
}
