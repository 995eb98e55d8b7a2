package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"willowmoon/internal/config"
	"willowmoon/internal/database"
	"willowmoon/internal/repository"
	"willowmoon/internal/security"
	"willowmoon/internal/validation"
)

// The back office has no self-registration: admin accounts are provisioned
// with this tool, then sign in with their password or their Google identity.
func main() {
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	createGoogleCmd := flag.NewFlagSet("create-google", flag.ExitOnError)

	createEmail := createCmd.String("email", "", "Admin email address (required)")
	createPassword := createCmd.String("password", "", "Admin password, 8-100 characters (required)")
	createName := createCmd.String("name", "", "Display name")

	googleEmail := createGoogleCmd.String("email", "", "Admin email address (required)")
	googleName := createGoogleCmd.String("name", "", "Display name")
	googleSubject := createGoogleCmd.String("subject", "", "Google account ID, the id_token sub claim (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)

	switch os.Args[1] {
	case "create":
		createCmd.Parse(os.Args[2:])
		handleCreate(userRepo, *createEmail, *createPassword, *createName)

	case "create-google":
		createGoogleCmd.Parse(os.Args[2:])
		handleCreateGoogle(userRepo, *googleEmail, *googleName, *googleSubject)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleCreate(userRepo *repository.UserRepository, email, password, name string) {
	record, errs := validation.ParseAdminLogin(validation.AdminLoginInput{Email: email, Password: password})
	if errs != nil {
		log.Fatalf("Invalid account details: %v", errs)
	}

	ensureEmailFree(userRepo, record.Email)

	hash, err := security.HashPassword(record.Password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user, err := userRepo.CreateUser(record.Email, hash, name)
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}
	fmt.Printf("Created admin account %s (id %d)\n", user.Email, user.ID)
}

func handleCreateGoogle(userRepo *repository.UserRepository, email, name, subject string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		log.Fatal("Error: -email flag is required")
	}
	if subject == "" {
		log.Fatal("Error: -subject flag is required")
	}

	ensureEmailFree(userRepo, email)

	user, err := userRepo.CreateOAuthUser(email, name, "google", subject)
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}
	fmt.Printf("Created admin account %s (id %d) for Google sign-in\n", user.Email, user.ID)
}

func ensureEmailFree(userRepo *repository.UserRepository, email string) {
	existing, err := userRepo.GetUserByEmail(email)
	if err != nil {
		log.Fatalf("Failed to look up account: %v", err)
	}
	if existing != nil {
		log.Fatalf("An account for %s already exists", email)
	}
}

func printUsage() {
	fmt.Println("Usage: admin <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  create          Create an admin account with email and password")
	fmt.Println("  create-google   Create an admin account that signs in with Google")
}
