package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rajputgovind/Trip--Project-Apis/internal/config"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/role"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
	"github.com/rajputgovind/Trip--Project-Apis/internal/gcp"
)

// Seeds the three base roles and, when -admin-email is given, a first admin
// account. Safe to run repeatedly: existing roles and users are left alone.
func main() {
	adminEmail := flag.String("admin-email", "", "email for the initial admin account")
	adminPassword := flag.String("admin-password", "", "password for the initial admin account")
	adminName := flag.String("admin-name", "Administrator", "display name for the initial admin account")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	clients, err := gcp.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("gcp client init failed: %v", err)
	}
	defer clients.Close()

	roleRepo := role.NewRepo(clients.Firestore)
	userRepo := user.NewRepo(clients.Firestore)

	roles := make(map[string]*role.Role, 3)
	for _, name := range []string{role.Admin, role.Organizer, role.User} {
		existing, err := roleRepo.GetByName(ctx, name)
		if err != nil {
			log.Fatalf("lookup role %s: %v", name, err)
		}
		if existing != nil {
			roles[name] = existing
			fmt.Println("role exists:", name)
			continue
		}
		created, err := roleRepo.Create(ctx, name)
		if err != nil {
			log.Fatalf("create role %s: %v", name, err)
		}
		roles[name] = created
		fmt.Println("role created:", name)
	}

	if *adminEmail == "" {
		return
	}
	if *adminPassword == "" {
		log.Fatal("admin-password is required when admin-email is set")
	}

	existing, err := userRepo.GetByEmail(ctx, *adminEmail)
	if err != nil {
		log.Fatalf("lookup admin: %v", err)
	}
	if existing != nil {
		fmt.Println("admin exists:", *adminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	now := time.Now().UTC()
	if _, err := userRepo.Create(ctx, user.User{
		Name:      *adminName,
		Email:     *adminEmail,
		Password:  string(hash),
		RoleID:    roles[role.Admin].ID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Println("admin created:", *adminEmail)
}
