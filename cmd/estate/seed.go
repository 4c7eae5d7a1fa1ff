package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/estatehub/listing-api/internal/core/ports"
	"github.com/estatehub/listing-api/internal/core/service"
	"github.com/estatehub/listing-api/pkg/logger"
)

type fixtureFile struct {
	Properties []fixtureProperty `yaml:"properties"`
}

type fixtureProperty struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Price        float64  `yaml:"price"`
	Location     string   `yaml:"location"`
	State        string   `yaml:"state"`
	Area         string   `yaml:"area"`
	Status       string   `yaml:"status"`
	PropertyType string   `yaml:"propertyType"`
	Bedrooms     int      `yaml:"bedrooms"`
	Bathrooms    int      `yaml:"bathrooms"`
	FloorArea    float64  `yaml:"floorArea"`
	Amenities    []string `yaml:"amenities"`
	ImageURL     string   `yaml:"imageUrl"`
	Featured     bool     `yaml:"featured"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <fixtures.yaml>",
	Short: "Insert listings from a YAML fixture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer b.close()

		svc := service.NewPropertyService(b.properties, b.favorites, nil, nil, logger.Component("seed"))
		n, err := loadFixtures(cmd.Context(), args[0], svc)
		if err != nil {
			return err
		}
		log.Info().Int("count", n).Str("driver", cfg.StorageDriver).Msg("fixtures inserted")
		return nil
	},
}

// loadFixtures creates every listing in path through the property service, so
// fixtures get the same validation as API writes. It stops at the first invalid entry.
func loadFixtures(ctx context.Context, path string, svc ports.PropertyService) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixtures: %w", err)
	}
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parse fixtures: %w", err)
	}

	for i, f := range file.Properties {
		_, err := svc.Create(ctx, ports.PropertyInput{
			Title:        f.Title,
			Description:  f.Description,
			Price:        f.Price,
			Location:     f.Location,
			State:        f.State,
			Area:         f.Area,
			Status:       f.Status,
			PropertyType: f.PropertyType,
			Bedrooms:     f.Bedrooms,
			Bathrooms:    f.Bathrooms,
			FloorArea:    f.FloorArea,
			Amenities:    f.Amenities,
			ImageURL:     f.ImageURL,
			IsFeatured:   f.Featured,
		})
		if err != nil {
			return i, fmt.Errorf("fixture %d (%q): %w", i+1, f.Title, err)
		}
	}
	return len(file.Properties), nil
}
