package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/database/migrations"
	"github.com/shashiranjanraj/plantnet/database/seeders"
	"github.com/shashiranjanraj/plantnet/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// plantnet db:indexes
var indexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Ensure all database indexes exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		defer database.Disconnect(ctx)

		fmt.Println("Ensuring indexes…")
		return migrations.RunAll(ctx, database.DB())
	},
}

// plantnet db:seed
var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		defer database.Disconnect(ctx)

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB())
	},
}
