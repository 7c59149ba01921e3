package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetCart         = "success get shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetCart         = "failed to get shopping cart"
	MessageFailedDownloadCart    = "failed to download shopping cart"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrNoTags                   = errors.New("add at least one tag")
	ErrDuplicateTag             = errors.New("this tag is already selected")
	ErrNoIngredients            = errors.New("add at least one ingredient")
	ErrDuplicateIngredient      = errors.New("you already added this ingredient")
	ErrCookingTimeOutOfRange    = errors.New("cooking time is out of range")
	ErrAmountOutOfRange         = errors.New("ingredient amount is out of range")
	ErrAlreadyFavorited         = errors.New("recipe already added")
	ErrNotFavorited             = errors.New("recipe already removed")
	ErrAlreadyInCart            = errors.New("recipe already added")
	ErrNotInCart                = errors.New("recipe already removed")
)

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image" validate:"required"`
		CookingTime int                       `json:"cooking_time" validate:"required"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"dive"`
	}

	// UpdateRecipeRequest uses pointers for the collections so an absent
	// field leaves the stored set untouched while an empty list still fails
	// validation.
	UpdateRecipeRequest struct {
		Name        string                     `json:"name" validate:"omitempty,max=200"`
		Text        string                     `json:"text" validate:"omitempty"`
		Image       string                     `json:"image" validate:"omitempty"`
		CookingTime int                        `json:"cooking_time" validate:"omitempty"`
		Tags        *[]string                  `json:"tags" validate:"omitempty,dive,uuid"`
		Ingredients *[]IngredientAmountRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	// RecipeIngredientResponse is the flattened ingredient projection pulled
	// through the association row.
	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID                string                     `json:"id"`
		Tags              []TagResponse              `json:"tags"`
		Author            UserResponse               `json:"author"`
		Ingredients       []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited       bool                       `json:"is_favorited"`
		IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
		Name              string                     `json:"name"`
		Image             string                     `json:"image"`
		Text              string                     `json:"text"`
		CookingTime       int                        `json:"cooking_time"`
		CreatedAt         time.Time                  `json:"created_at"`
	}

	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	// RecipeFilter narrows the recipe listing. IsFavorited and
	// IsInShoppingCart are nil when the query parameter is absent.
	RecipeFilter struct {
		TagSlugs         []string
		AuthorID         string
		IsFavorited      *bool
		IsInShoppingCart *bool
	}

	// ShoppingListItem is one aggregated line of the exported list.
	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}
)
