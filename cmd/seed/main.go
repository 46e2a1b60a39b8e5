package main

import (
	"fmt"
	"os"

	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/database"
	"github.com/motorplaza/motorplaza-backend/internal/logging"
	"github.com/motorplaza/motorplaza-backend/internal/seed"
	"github.com/motorplaza/motorplaza-backend/internal/storage"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	logging.Setup()

	var force bool

	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Demo-data utilities for the marketplace database",
	}

	listingsCmd := &cobra.Command{
		Use:   "listings",
		Short: "Insert the sample car listings with placeholder photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := connect()
			if err != nil {
				return err
			}
			created, err := seed.Listings(db, store)
			if err != nil {
				return err
			}
			if created == 0 {
				fmt.Println("no new listings created")
			} else {
				fmt.Printf("inserted %d listings (seed admin: admin_seed@example.com / admin123)\n", created)
			}
			return nil
		},
	}

	photosCmd := &cobra.Command{
		Use:   "photos",
		Short: "Download the curated demo photos and attach them to listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := connect()
			if err != nil {
				return err
			}
			total, err := seed.Photos(db, store, force)
			if err != nil {
				return err
			}
			fmt.Printf("downloaded %d photos\n", total)
			return nil
		},
	}
	photosCmd.Flags().BoolVar(&force, "force", false, "replace existing photos with the downloaded ones")

	rootCmd.AddCommand(listingsCmd, photosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect() (*gorm.DB, storage.Storage, error) {
	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(database.DB); err != nil {
		return nil, nil, err
	}
	local, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return nil, nil, err
	}
	return database.DB, local, nil
}
