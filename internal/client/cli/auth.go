package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sahayak/sahayak-backend/internal/client/session"
	"github.com/sahayak/sahayak-backend/internal/domain"
)

// Register creates a new account interactively
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	displayName, err := GetSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	req := domain.RegisterRequest{
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Password:    string(password),
	}
	if err := a.client.Register(ctx, &req); err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	fmt.Println("Account created. You can now log in.")
	return nil
}

// Login authenticates and persists the session
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	if err := a.sessions.Save(&session.Session{
		AccessToken: resp.AccessToken,
		User:        resp.User,
	}); err != nil {
		fmt.Println("Warning: could not persist session:", err)
	}

	fmt.Printf("Logged in as %s\n", resp.User.DisplayName)
	return nil
}

// Logout clears the persisted session
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(); err != nil {
		fmt.Println("Logout failed:", err)
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// Me shows the current account as the server sees it
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return nil
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		fmt.Println("Failed to load profile:", err)
		return err
	}

	fmt.Printf("%s <%s> role=%s joined=%s\n",
		user.DisplayName, user.Email, user.Role, user.CreatedAt.Format("2006-01-02"))
	return nil
}
