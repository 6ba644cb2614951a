package main

import (
	"context"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"library-backend/internal/config"
	"library-backend/internal/domains/user"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/infrastructure/database"
)

var createAdminUsername string

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account directly in the database",
	Long: `Creates an admin account directly against the database, without
going through the HTTP API. Useful for bootstrapping a fresh deployment
before the server is reachable.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVarP(&createAdminUsername, "username", "u", "", "username for the new admin (required)")
	_ = createAdminCmd.MarkFlagRequired("username")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	req := user.RegisterRequest{
		Username: createAdminUsername,
		Password: password,
		Role:     user.RoleAdmin.String(),
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid account details: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(&cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// Bootstrap may run before the API server has ever started
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), user.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	admin := &user.User{
		ID:           uuid.New(),
		Username:     createAdminUsername,
		PasswordHash: string(passwordHash),
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	repo := repository.NewPostgresRepository(db.Pool)
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Admin %q created (id %s)\n", admin.Username, admin.ID)
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytePassword)), nil
}
