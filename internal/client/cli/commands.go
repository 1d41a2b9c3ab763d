package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tokenauth/internal/client/client"
	"github.com/dmitrijs2005/tokenauth/internal/client/services"
	"github.com/dmitrijs2005/tokenauth/internal/common"
)

// getSimpleText and getPassword point to the interactive input helpers and
// are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAgeNotInteger = errors.New("age must be an integer")

// Register prompts for the account fields and creates the account. It does
// not log the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ageText, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return errAgeNotInteger
	}
	city, err := getSimpleText(a.reader, "Enter city", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, client.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Age:      age,
		City:     city,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s). Use 'login' to sign in.\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and stores the issued token. Each login
// creates a new token on the server; earlier ones stay valid until logout.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Me prints the account the stored token belongs to.
func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.userEmail = ""
		}
		return err
	}

	fmt.Fprintf(a.out, "id:    %s\nname:  %s\nemail: %s\nage:   %d\ncity:  %s\n", u.ID, u.Name, u.Email, u.Age, u.City)
	return nil
}

// Logout revokes every session of the user and forgets the local one.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	if err != nil && !errors.Is(err, services.ErrNotLoggedIn) {
		return err
	}

	a.userEmail = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
