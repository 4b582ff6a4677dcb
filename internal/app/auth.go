package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blackwell-systems/nexusshelf/internal/operations"
	"github.com/blackwell-systems/nexusshelf/internal/session"
	"github.com/blackwell-systems/nexusshelf/internal/tui"
	"github.com/blackwell-systems/nexusshelf/internal/util"
)

func newLoginCmd() *cobra.Command {
	return newAuthCmd(session.ModeSignIn, "login", "Sign in as a librarian")
}

func newSignupCmd() *cobra.Command {
	return newAuthCmd(session.ModeSignUp, "signup", "Create a librarian account and sign in")
}

func newAuthCmd(mode session.Mode, use, short string) *cobra.Command {
	var cred session.Credentials

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

Accounts are local: the email and name are kept in the data directory
so every record you create or edit is stamped with them. The password
is required but not stored or verified.

Without flags, the form (or plain prompts) asks for each field. Passwords
are read without echo.`,
		Example: fmt.Sprintf(`  nexusshelf %s
  nexusshelf %s --email ali@example.org`, use, use),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred.Mode = mode
			if err := collectCredentials(cmd, &cred); err != nil {
				return err
			}
			if err := cred.Validate(); err != nil {
				return err
			}

			// Signing in needs no backend; the catalog load is best effort.
			st, err := openStore(cmd.Context())
			if err != nil {
				warn("Catalog not loaded: %v", err)
				ctrl := operations.NewController(newEffects(nil))
				ctrl.Dispatch(ctrl.Effects().Authenticate(cred))
				return reportSignedIn(ctrl)
			}
			defer closeStore(st)

			ctrl := operations.NewController(newEffects(st))
			if err := ctrl.Authenticate(cmd.Context(), cred); err != nil {
				warn("%v", noticeError(ctrl, err))
			}
			return reportSignedIn(ctrl)
		},
	}

	if mode == session.ModeSignUp {
		cmd.Flags().StringVar(&cred.FullName, "name", "", "Full name")
	}
	cmd.Flags().StringVar(&cred.Email, "email", "", "Email address")
	return cmd
}

func reportSignedIn(ctrl *operations.Controller) error {
	s := ctrl.State()
	if !s.SignedIn() {
		return errors.New("sign in failed")
	}
	ok("Signed in as %s <%s>", s.CurrentUser.FullName, s.CurrentUser.Email)
	if len(s.Books) > 0 {
		fmt.Printf("  %d records in the catalog\n", len(s.Books))
	}
	return nil
}

// collectCredentials fills whatever the flags left blank, through the TUI
// form or line prompts.
func collectCredentials(cmd *cobra.Command, cred *session.Credentials) error {
	missing := false
	for _, f := range session.RequiredFields(cred.Mode) {
		if f != session.FieldPassword && fieldValue(cred, f) == "" {
			missing = true
		}
	}

	if missing && tui.ShouldUseTUI(cmd) {
		got, err := tui.RunLoginForm(cred.Mode)
		if err != nil {
			return err
		}
		*cred = *got
		return nil
	}

	for _, f := range session.RequiredFields(cred.Mode) {
		if fieldValue(cred, f) != "" {
			continue
		}
		var (
			v   string
			err error
		)
		if f == session.FieldPassword {
			v, err = readPassword("Password: ")
		} else {
			v, err = prompt(fmt.Sprintf("%s: ", capitalize(string(f))))
		}
		if err != nil {
			return err
		}
		setFieldValue(cred, f, v)
	}
	return nil
}

func fieldValue(c *session.Credentials, f session.Field) string {
	switch f {
	case session.FieldFullName:
		return c.FullName
	case session.FieldEmail:
		return c.Email
	case session.FieldPassword:
		return c.Password
	}
	return ""
}

func setFieldValue(c *session.Credentials, f session.Field, v string) {
	switch f {
	case session.FieldFullName:
		c.FullName = v
	case session.FieldEmail:
		c.Email = v
	case session.FieldPassword:
		c.Password = v
	}
}

// readPassword reads without echo from a terminal, or one line from a pipe.
func readPassword(label string) (string, error) {
	if !util.IsStdinTTY() {
		return prompt(label)
	}
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored librarian",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := operations.NewController(newEffects(nil))
			ctrl.Logout()
			ok("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in librarian",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions := sessionStore()
			u, err := sessions.Load()
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("%w: run 'nexusshelf login'", operations.ErrNotSignedIn)
			}
			header("Librarian")
			printField("name", u.FullName)
			printField("email", u.Email)
			printField("id", u.ID)
			printField("session", sessions.Path())
			printField("backend", cfg.Backend.Kind)
			return nil
		},
	}
}
