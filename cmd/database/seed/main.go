package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiber-king/foodgram-project-react/cmd/config"
	migration "github.com/kiber-king/foodgram-project-react/cmd/database/migrate"
	"github.com/kiber-king/foodgram-project-react/entities"
	"github.com/kiber-king/foodgram-project-react/internal/utils"
	"github.com/kiber-king/foodgram-project-react/pkg/ingredient"
	"github.com/kiber-king/foodgram-project-react/pkg/tag"
)

type ingredientRow struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

var defaultTags = []entities.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

func main() {
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "path to ingredients fixture")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()

	if err := seedTags(ctx, tag.NewTagRepository(db)); err != nil {
		log.Fatalf("failed to seed tags: %v", err)
	}
	if err := seedIngredients(ctx, db, ingredient.NewIngredientRepository(db), *ingredientsPath); err != nil {
		log.Fatalf("failed to seed ingredients: %v", err)
	}

	fmt.Println("Seeding complete")
}

func seedTags(ctx context.Context, repo tag.TagRepository) error {
	for _, t := range defaultTags {
		_, err := repo.GetTagBySlug(ctx, t.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		t.ID = uuid.New()
		if err := repo.CreateTag(ctx, &t); err != nil {
			return err
		}
	}
	return nil
}

func seedIngredients(ctx context.Context, db *gorm.DB, repo ingredient.IngredientRepository, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var rows []ingredientRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return err
	}

	for _, row := range rows {
		var count int64
		if err := db.WithContext(ctx).
			Model(&entities.Ingredient{}).
			Where("name = ? AND measurement_unit = ?", row.Name, row.MeasurementUnit).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		item := entities.Ingredient{
			ID:              uuid.New(),
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
		}
		if err := repo.CreateIngredient(ctx, &item); err != nil {
			return err
		}
	}
	return nil
}
