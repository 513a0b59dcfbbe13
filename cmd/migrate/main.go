package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/contentloom/contentloom/internal/config"
	"github.com/contentloom/contentloom/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("Connected to database successfully")

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL UNIQUE,
			executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create migrations table: %v\n", err)
		os.Exit(1)
	}

	migrationsDir := "./migrations"
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migrations directory: %v\n", err)
		os.Exit(1)
	}

	// Sort files to ensure correct order
	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".sql" {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	if len(sqlFiles) == 0 {
		fmt.Println("No migration files found")
		return
	}

	for _, filename := range sqlFiles {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", filename).Scan(&count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to check migration status: %v\n", err)
			os.Exit(1)
		}

		if count > 0 {
			fmt.Printf("Skipping %s (already executed)\n", filename)
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, filename))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read migration file %s: %v\n", filename, err)
			os.Exit(1)
		}

		fmt.Printf("Running migration: %s\n", filename)
		if _, err := db.Exec(string(content)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to execute migration %s: %v\n", filename, err)
			os.Exit(1)
		}

		if _, err := db.Exec("INSERT INTO migrations (name) VALUES (?)", filename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to record migration %s: %v\n", filename, err)
			os.Exit(1)
		}

		fmt.Printf("Migration %s completed\n", filename)
	}

	fmt.Println("All migrations completed successfully")
}
