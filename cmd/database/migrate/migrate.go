package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/kiber-king/foodgram-project-react/entities"
)

func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&entities.User{},
		&entities.Subscription{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeTag{},
		&entities.RecipeIngredientAmount{},
		&entities.FavoriteRecipe{},
		&entities.Cart{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
