package recipe

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiber-king/foodgram-project-react/domain"
	"github.com/kiber-king/foodgram-project-react/entities"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagLinks []*entities.RecipeTag, amounts []*entities.RecipeIngredientAmount) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tagLinks []*entities.RecipeTag, amounts []*entities.RecipeIngredientAmount) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error)
		DeleteRecipe(ctx context.Context, id string) error

		IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)
		CreateFavorite(ctx context.Context, favorite *entities.FavoriteRecipe) error
		DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error)

		IsInCart(ctx context.Context, userID, recipeID string) (bool, error)
		CreateCart(ctx context.Context, cart *entities.Cart) error
		DeleteCart(ctx context.Context, userID, recipeID string) (int64, error)
		GetCartRecipes(ctx context.Context, userID string, limit, offset int) ([]*entities.Recipe, int64, error)

		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe persists the recipe row, its tag links and its ingredient
// rows in one transaction; a failure rolls back all of them.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagLinks []*entities.RecipeTag, amounts []*entities.RecipeIngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := tx.Create(&tagLinks).Error; err != nil {
			return err
		}
		return tx.Create(&amounts).Error
	})
}

// UpdateRecipe saves the recipe row and replaces its tag links and
// ingredient rows wholesale. A nil slice leaves the stored set untouched.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tagLinks []*entities.RecipeTag, amounts []*entities.RecipeIngredientAmount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if tagLinks != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&tagLinks).Error; err != nil {
				return err
			}
		}
		if amounts != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredientAmount{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&amounts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) applyFilter(q *gorm.DB, filter domain.RecipeFilter, viewerID string) *gorm.DB {
	if len(filter.TagSlugs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.AuthorID != "" {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	// Anonymous viewers get the unfiltered queryset for both flags.
	if viewerID != "" && filter.IsFavorited != nil {
		if *filter.IsFavorited {
			q = q.Where("recipes.id IN (SELECT recipe_id FROM favorite_recipes WHERE user_id = ?)", viewerID)
		} else {
			q = q.Where("recipes.id NOT IN (SELECT recipe_id FROM favorite_recipes WHERE user_id = ?)", viewerID)
		}
	}
	if viewerID != "" && filter.IsInShoppingCart != nil {
		if *filter.IsInShoppingCart {
			q = q.Where("recipes.id IN (SELECT recipe_id FROM carts WHERE user_id = ?)", viewerID)
		} else {
			q = q.Where("recipes.id NOT IN (SELECT recipe_id FROM carts WHERE user_id = ?)", viewerID)
		}
	}
	return q
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.applyFilter(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter, viewerID).
		Distinct("recipes.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.applyFilter(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter, viewerID).
		Distinct("recipes.*").
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Cart{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CreateFavorite(ctx context.Context, favorite *entities.FavoriteRecipe) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *recipeRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.FavoriteRecipe{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Cart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CreateCart(ctx context.Context, cart *entities.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *recipeRepository) DeleteCart(ctx context.Context, userID, recipeID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Cart{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) GetCartRecipes(ctx context.Context, userID string, limit, offset int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN carts ON recipes.id = carts.recipe_id").
		Where("carts.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN carts ON recipes.id = carts.recipe_id").
		Where("carts.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("carts.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// GetShoppingList sums amounts per (ingredient name, measurement unit)
// across every recipe in the user's cart, ordered by ingredient name.
func (r *recipeRepository) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredientAmount{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredient_amounts.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredient_amounts.ingredient_id").
		Joins("JOIN carts ON carts.recipe_id = recipe_ingredient_amounts.recipe_id").
		Where("carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
