package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/session"
)

func (a *app) cmdHealth(ctx context.Context) error {
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%s)\n", h.Service, h.Status, h.Version)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "STUDENT", "TEACHER or STUDENT")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.api.Register(ctx, dto.RegisterRequest{
		Email:     *email,
		Password:  *password,
		Role:      dto.Role(strings.ToUpper(*role)),
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}
	if err := session.Save(a.store, auth); err != nil {
		return err
	}
	fmt.Printf("Utworzono konto %s (%s)\n", auth.Email, auth.Role)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.api.Login(ctx, dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if err := session.Save(a.store, auth); err != nil {
		return err
	}
	fmt.Printf("Zalogowano jako %s (%s)\n", auth.Email, auth.Role)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.store.ClearSession(); err != nil {
		return err
	}
	fmt.Println("Wylogowano.")
	return nil
}

func (a *app) cmdWhoami() error {
	sess, err := a.requireSession()
	if err != nil {
		return err
	}
	name := strings.TrimSpace(deref(sess.FirstName) + " " + deref(sess.LastName))
	if name != "" {
		fmt.Printf("%s — %s (%s)\n", name, sess.Email, sess.Role)
	} else {
		fmt.Printf("%s (%s)\n", sess.Email, sess.Role)
	}
	if claims, err := session.Decode(sess.Token); err == nil && claims.ExpiresAt != nil {
		fmt.Printf("Sesja wygasa: %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *app) cmdPassword(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println(`Password commands:

  prolearn password change -old <pw> -new <pw>
  prolearn password forgot -email <email>
  prolearn password reset -token <token> -new <pw>`)
		return nil
	}

	switch args[0] {
	case "change":
		fs := flag.NewFlagSet("password change", flag.ContinueOnError)
		oldPw := fs.String("old", "", "current password")
		newPw := fs.String("new", "", "new password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}
		auth, err := a.api.ChangePassword(ctx, dto.ChangePasswordRequest{OldPassword: *oldPw, NewPassword: *newPw})
		if err != nil {
			return err
		}
		if err := session.Save(a.store, auth); err != nil {
			return err
		}
		fmt.Println("Hasło zmienione.")
		return nil

	case "forgot":
		fs := flag.NewFlagSet("password forgot", flag.ContinueOnError)
		email := fs.String("email", "", "account email")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		res, err := a.api.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: *email})
		if err != nil {
			return err
		}
		if res.Token != "" {
			fmt.Printf("Token resetu (tryb demo): %s\n", res.Token)
		} else {
			fmt.Println("Jeśli konto istnieje, wysłano wiadomość z linkiem do resetu.")
		}
		return nil

	case "reset":
		fs := flag.NewFlagSet("password reset", flag.ContinueOnError)
		token := fs.String("token", "", "reset token")
		newPw := fs.String("new", "", "new password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.api.ResetPassword(ctx, dto.ResetPasswordRequest{Token: *token, NewPassword: *newPw}); err != nil {
			return err
		}
		fmt.Println("Hasło zresetowane. Zaloguj się ponownie.")
		return nil

	default:
		return fmt.Errorf("unknown password command: %s", args[0])
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
