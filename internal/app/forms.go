package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/deepclear/manifest/internal/api"
	"github.com/deepclear/manifest/internal/policy"
	"github.com/deepclear/manifest/internal/session"
)

// runLoginForm prompts for credentials, authenticates, and persists the
// resulting session. Required-field checks run in the form itself, so no
// request is made until both inputs are present.
func runLoginForm(ctx context.Context, client *api.Client, sessions *session.Store) (session.Session, error) {
	var name, password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Admin Name").
				Prompt("> ").
				Validate(requireValue("admin name")).
				Value(&name),
			huh.NewInput().
				Title("Password").
				Prompt("> ").
				EchoMode(huh.EchoModePassword).
				Validate(requireValue("password")).
				Value(&password),
		).Title("DeepClear Admin Portal"),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return session.Session{}, fmt.Errorf("login cancelled: %w", err)
	}

	result, err := client.Login(ctx, name, password)
	if err != nil {
		return session.Session{}, fmt.Errorf("login failed: %w", err)
	}

	sess := session.Session{
		AdminID:    strconv.FormatInt(result.AdminID, 10),
		AdminName:  result.AdminName,
		Department: policy.Department(result.Department),
		Token:      result.Token,
		IssuedAt:   time.Now().UTC(),
	}
	if err := sessions.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	log.Info("logged in", "admin", sess.AdminName, "department", sess.Department.String())
	return sess, nil
}

// CreateAdminUser runs the interactive admin-provisioning form.
func CreateAdminUser(ctx context.Context, opts Options) error {
	_, client, _, closeLogs, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeLogs()

	req, err := runProvisionForm(ctx, "Create Admin User")
	if err != nil {
		return err
	}

	created, err := client.CreateAdmin(ctx, req)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Printf("Admin created: %s (ID: %d)\n", created.AdminName, created.AdminID)
	return nil
}

// CreateClientUser runs the interactive client-provisioning form.
func CreateClientUser(ctx context.Context, opts Options) error {
	_, client, _, closeLogs, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer closeLogs()

	req, err := runProvisionForm(ctx, "Create Client User")
	if err != nil {
		return err
	}

	created, err := client.CreateClient(ctx, req)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	fmt.Printf("Client created: %s (ID: %d)\n", created.ClientName, created.ClientID)
	return nil
}

func runProvisionForm(ctx context.Context, title string) (api.CreateUserRequest, error) {
	var name, password, department string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Prompt("> ").
				Validate(requireValue("name")).
				Value(&name),
			huh.NewInput().
				Title("Password").
				Prompt("> ").
				EchoMode(huh.EchoModePassword).
				Validate(requireValue("password")).
				Value(&password),
			huh.NewInput().
				Title("Department ID (blank for unrestricted)").
				Prompt("> ").
				Validate(validateDepartment).
				Value(&department),
		).Title(title),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return api.CreateUserRequest{}, fmt.Errorf("cancelled: %w", err)
	}

	req := api.CreateUserRequest{Name: name, Password: password}
	if trimmed := strings.TrimSpace(department); trimmed != "" {
		dept, err := strconv.Atoi(trimmed)
		if err != nil {
			return api.CreateUserRequest{}, &api.ValidationError{Field: "department", Reason: "must be a number"}
		}
		req.Department = &dept
	}
	return req, nil
}

func requireValue(label string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateDepartment(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.Atoi(trimmed); err != nil {
		return fmt.Errorf("department must be a number")
	}
	return nil
}
