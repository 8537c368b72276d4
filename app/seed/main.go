package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"kledje/domain"
	psqlRepo "kledje/internal/repository/postgres"
	"kledje/pkg/config"
	"kledje/pkg/database"
	"kledje/pkg/logger"
	"kledje/pkg/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const usage = "expected 'migrate', 'add-admin' or 'init-settings' subcommand"

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	name := addAdminCmd.String("name", "Admin", "Display name for the admin")
	email := addAdminCmd.String("email", "", "Email for the admin")
	password := addAdminCmd.String("password", "", "Password for the admin (min 6 chars)")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.ClosePostgres(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate: %v", err)
		}
		fmt.Println("Schema migrated.")
	case "add-admin":
		_ = addAdminCmd.Parse(os.Args[2:])
		if *email == "" || len(*password) < 6 {
			fmt.Println("email and a password of at least 6 characters are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(ctx, db, *name, *email, *password)
	case "init-settings":
		initSettings(ctx, db)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func createAdmin(ctx context.Context, db *gorm.DB, name, email, password string) {
	users := psqlRepo.NewUserRepository(db)

	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Fatalf("User '%s' already exists", email)
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("Failed to look up user: %v", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' created with id %s.\n", email, admin.ID)
}

func initSettings(ctx context.Context, db *gorm.DB) {
	settings := psqlRepo.NewSettingsRepository(db)

	defaults := &domain.SiteSettings{
		SiteName:       "Kledje",
		PrimaryColor:   "#f78fb3",
		SecondaryColor: "#3dc1d3",
		HeroTitle:      "منتجات طبيعية للعناية بالبشرة",
		HeroSubtitle:   "اكتشفي مجموعتنا المصنوعة يدوياً",
		ContactInfo:    datatypes.NewJSONType(domain.ContactInfo{}),
	}
	if err := settings.EnsureDefaults(ctx, defaults); err != nil {
		log.Fatalf("Failed to create settings: %v", err)
	}

	fmt.Printf("Settings row ready (site name %q).\n", defaults.SiteName)
}
