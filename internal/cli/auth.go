package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/models"
)

// Register collects credentials interactively and creates a new account.
func (a *App) Register(ctx context.Context) error {
	fmt.Println("Welcome to todokeeper - Registration")

	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	confirmation, err := GetPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	if !bytes.Equal(password, confirmation) {
		fmt.Println("Registration failed: passwords don't match")
		return nil
	}

	if _, err := a.auth.Register(ctx, username, email, string(password)); err != nil {
		fmt.Printf("Registration failed: %s\n", err.Error())
		return nil
	}

	fmt.Println("Registration successful! You can now login.")
	return nil
}

// Login authenticates the user, establishes a session and shows any
// pending reminders.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		fmt.Printf("Login failed: %s\n", err.Error())
		return nil
	}

	fmt.Printf("Welcome back, %s!\n", user.Username)
	return a.Reminders(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out successfully!")
	return nil
}

// Status shows the current user and their task statistics, or a hint when
// nobody is logged in.
func (a *App) Status(ctx context.Context) error {
	if !a.auth.IsAuthenticated() {
		fmt.Println("Not logged in")
		return nil
	}

	user, err := a.auth.CurrentUser()
	if err != nil {
		return err
	}
	tasks := a.tasks.ListForOwner(user.ID)

	now := time.Now()
	var pending, completed, overdue int
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			pending++
			if t.DueDate != nil && !t.DueDate.After(now) {
				overdue++
			}
		case models.StatusCompleted:
			completed++
		}
	}

	fmt.Println("User Status")
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Println()
	fmt.Printf("Pending: %d\n", pending)
	fmt.Printf("Completed: %d\n", completed)
	fmt.Printf("Overdue: %d\n", overdue)
	fmt.Printf("Total: %d\n", len(tasks))
	return nil
}
