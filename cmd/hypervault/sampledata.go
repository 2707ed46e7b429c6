package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ampere207/hyper-vault/internal/persistence"
	"github.com/ampere207/hyper-vault/internal/schema"
)

// seedSampleData creates and populates a starter 'users' table the first
// time the engine runs against a fresh snapshot, so a new user has
// something to SELECT against immediately.
func seedSampleData(facade *persistence.Facade, log zerolog.Logger) {
	if _, exists := facade.Engine().Table("users"); exists {
		return
	}

	fmt.Println("Initializing sample 'users' table...")
	if err := facade.CreateTable("users", []string{"id", "name", "email", "age"}, "id"); err != nil {
		log.Warn().Err(err).Msg("failed to create sample table")
		return
	}

	sampleUsers := []schema.Row{
		{"id": "1", "name": "Anthony Etienne", "email": "anthony.etienne@example.com", "age": "25"},
		{"id": "2", "name": "Jane Doe", "email": "jane.doe@example.com", "age": "30"},
		{"id": "3", "name": "Bob Smith", "email": "bob.smith@example.com", "age": "28"},
		{"id": "4", "name": "Alice Johnson", "email": "alice.johnson@example.com", "age": "35"},
	}
	for _, row := range sampleUsers {
		if err := facade.InsertRow("users", row); err != nil {
			log.Warn().Err(err).Msg("failed to insert sample row")
		}
	}
	fmt.Println("Sample data initialized successfully.")
	fmt.Println()
}

func displayStartupInfo(facade *persistence.Facade) {
	meta := facade.Engine().Metadata()
	fmt.Println("Database Statistics:")
	fmt.Printf("   Version: %s\n", meta.Version)
	fmt.Printf("   Tables: %d\n", len(facade.Engine().TableNames()))
	fmt.Printf("   Total Operations: %d\n", meta.TotalOperations)
	if meta.TotalOperations > 0 {
		fmt.Printf("   Last Modified: unix timestamp %d\n", meta.LastModified)
	}
	fmt.Println()
}
