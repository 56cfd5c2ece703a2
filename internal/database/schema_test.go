package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "../../migrations"

func TestMigrationFilesExist(t *testing.T) {
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_staff_table.sql",
		"00002_create_refresh_tokens_table.sql",
		"00003_create_category_table.sql",
		"00004_create_product_table.sql",
		"00005_create_settings_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	expectedTables := map[string]string{
		"staff":          "00001_create_staff_table.sql",
		"refresh_tokens": "00002_create_refresh_tokens_table.sql",
		"category":       "00003_create_category_table.sql",
		"product":        "00004_create_product_table.sql",
		"settings":       "00005_create_settings_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "CREATE TABLE "+tableName) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		if !strings.Contains(contentStr, "DROP TABLE "+tableName) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestProductTableHasRequiredColumns(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "00004_create_product_table.sql"))
	if err != nil {
		t.Fatalf("Failed to read product migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id BIGSERIAL PRIMARY KEY",
		"uuid UUID",
		"name VARCHAR",
		"info TEXT",
		"price DECIMAL",
		"image_url VARCHAR",
		"category_id BIGINT",
		"created_at TIMESTAMP",
		"updated_at TIMESTAMP",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Product table missing required column definition: %s", column)
		}
	}
}

func TestSettingsTableEnforcesSingleRow(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "00005_create_settings_table.sql"))
	if err != nil {
		t.Fatalf("Failed to read settings migration: %v", err)
	}

	if !strings.Contains(string(content), "CREATE UNIQUE INDEX settings_singleton") {
		t.Error("Settings table missing the single-row unique index")
	}
}
