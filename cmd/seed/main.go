package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	firstName, lastName, dob := "Demo", "User", "1990-01-01"
	email := "demo@example.com"
	password := "password123"
	username := entity.DeriveUsername(firstName, lastName, dob)

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (first_name, last_name, phone, email, dob, username, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, firstName, lastName, "0812345678", email, dob, username, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)

	seedTasks := []struct {
		title  string
		desc   string
		status entity.TaskStatus
	}{
		{"buy milk", "2 liters, semi-skimmed", entity.StatusPending},
		{"write report", "quarterly numbers", entity.StatusInProgress},
		{"book dentist", "", entity.StatusCompleted},
	}
	for _, t := range seedTasks {
		if _, err := db.Exec(`
			INSERT INTO tasks (title, description, status, user_id, email)
			VALUES ($1, $2, $3, $4, $5)
		`, t.title, t.desc, t.status, id, email); err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
	}
	fmt.Printf("seeded %d tasks for user %d\n", len(seedTasks), id)
}
