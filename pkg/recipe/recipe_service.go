package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kiber-king/foodgram-project-react/domain"
	"github.com/kiber-king/foodgram-project-react/entities"
	"github.com/kiber-king/foodgram-project-react/internal/utils/image"
	"github.com/kiber-king/foodgram-project-react/internal/utils/render"
	"github.com/kiber-king/foodgram-project-react/internal/utils/storage"
	"github.com/kiber-king/foodgram-project-react/pkg/ingredient"
	"github.com/kiber-king/foodgram-project-react/pkg/tag"
	"github.com/kiber-king/foodgram-project-react/pkg/user"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, id string, viewerID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID, role string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id string, userID, role string) error

		AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
		GetCart(ctx context.Context, userID string, limit, offset int) ([]domain.RecipeShortResponse, int64, error)
		DownloadShoppingCart(ctx context.Context, userID string) ([]byte, string, string, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		userRepository       user.UserRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		s3                   storage.AwsS3
		renderer             render.ShoppingListRenderer
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	userRepository user.UserRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	s3 storage.AwsS3,
	renderer render.ShoppingListRenderer,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		userRepository:       userRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		s3:                   s3,
		renderer:             renderer,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		item, err := s.toRecipeResponse(ctx, recipe, viewerID)
		if err != nil {
			return nil, 0, err
		}
		response = append(response, item)
	}

	return response, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id string, viewerID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, recipe, viewerID)
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	if err := validateCollections(req.Tags, req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}
	if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxCookingTime {
		return domain.RecipeResponse{}, domain.ErrCookingTimeOutOfRange
	}

	tagIDs, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	ingredientIDs, amounts, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	authorUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipeID := uuid.New()
	imageURL, err := s.uploadImage(ctx, recipeID.String(), req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          recipeID,
		AuthorID:    authorUUID,
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	tagLinks := buildTagLinks(recipeID, tagIDs)
	rows := buildAmountRows(recipeID, ingredientIDs, amounts)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagLinks, rows); err != nil {
		if key := s.s3.GetObjectKeyFromLink(imageURL); key != "" {
			_ = s.s3.DeleteFile(key)
		}
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID, role string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	// Absent collections keep their stored set; present ones revalidate
	// under the same rules as create.
	if req.Tags != nil {
		if err := validateTags(*req.Tags); err != nil {
			return domain.RecipeResponse{}, err
		}
	}
	if req.Ingredients != nil {
		if err := validateIngredients(*req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	if req.CookingTime != 0 {
		if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxCookingTime {
			return domain.RecipeResponse{}, domain.ErrCookingTimeOutOfRange
		}
		recipe.CookingTime = req.CookingTime
	}
	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Text != "" {
		recipe.Text = req.Text
	}

	var tagLinks []*entities.RecipeTag
	if req.Tags != nil {
		tagIDs, err := s.resolveTags(ctx, *req.Tags)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		tagLinks = buildTagLinks(recipe.ID, tagIDs)
	}

	var rows []*entities.RecipeIngredientAmount
	if req.Ingredients != nil {
		ingredientIDs, amounts, err := s.resolveIngredients(ctx, *req.Ingredients)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		rows = buildAmountRows(recipe.ID, ingredientIDs, amounts)
	}

	oldImageURL := recipe.ImageURL
	if req.Image != "" {
		imageURL, err := s.uploadImage(ctx, recipe.ID.String(), req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	// Preloaded associations must not be re-saved along with the row.
	updated := &entities.Recipe{
		ID:          recipe.ID,
		AuthorID:    recipe.AuthorID,
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Timestamp:   recipe.Timestamp,
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, updated, tagLinks, rows); err != nil {
		return domain.RecipeResponse{}, err
	}

	if req.Image != "" && oldImageURL != "" && oldImageURL != recipe.ImageURL {
		if key := s.s3.GetObjectKeyFromLink(oldImageURL); key != "" {
			_ = s.s3.DeleteFile(key)
		}
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if recipe.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(recipe.ImageURL); key != "" {
			_ = s.s3.DeleteFile(key)
		}
	}

	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	favorited, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if favorited {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyFavorited
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShortResponse{}, domain.ErrParseUUID
	}

	favorite := &entities.FavoriteRecipe{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.CreateFavorite(ctx, favorite); err != nil {
		// A concurrent insert hits the (user, recipe) unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeShortResponse{}, err
	}

	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	deleted, err := s.recipeRepository.DeleteFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeShortResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeShortResponse{}, err
	}

	inCart, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if inCart {
		return domain.RecipeShortResponse{}, domain.ErrAlreadyInCart
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeShortResponse{}, domain.ErrParseUUID
	}

	cart := &entities.Cart{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.CreateCart(ctx, cart); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyInCart
		}
		return domain.RecipeShortResponse{}, err
	}

	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	deleted, err := s.recipeRepository.DeleteCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) GetCart(ctx context.Context, userID string, limit, offset int) ([]domain.RecipeShortResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetCartRecipes(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toRecipeShortResponse(recipe))
	}
	return response, count, nil
}

func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID string) ([]byte, string, string, error) {
	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", domain.ErrUserNotFound
		}
		return nil, "", "", err
	}

	items, err := s.recipeRepository.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, "", "", err
	}

	return s.renderer.Render(owner.FirstName, items)
}

// validateCollections applies the write-path rules in a fixed order:
// empty tags, empty ingredients, duplicate tag, duplicate ingredient.
func validateCollections(tags []string, ingredients []domain.IngredientAmountRequest) error {
	if len(tags) == 0 {
		return domain.ErrNoTags
	}
	if len(ingredients) == 0 {
		return domain.ErrNoIngredients
	}
	if err := validateTags(tags); err != nil {
		return err
	}
	return validateIngredients(ingredients)
}

func validateTags(tags []string) error {
	if len(tags) == 0 {
		return domain.ErrNoTags
	}
	seen := make(map[string]struct{}, len(tags))
	for _, id := range tags {
		if _, ok := seen[id]; ok {
			return domain.ErrDuplicateTag
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateIngredients(ingredients []domain.IngredientAmountRequest) error {
	if len(ingredients) == 0 {
		return domain.ErrNoIngredients
	}
	seen := make(map[string]struct{}, len(ingredients))
	for _, item := range ingredients {
		if _, ok := seen[item.ID]; ok {
			return domain.ErrDuplicateIngredient
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

func (s *recipeService) resolveTags(ctx context.Context, ids []string) ([]uuid.UUID, error) {
	tags, err := s.tagRepository.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, domain.ErrTagNotFound
	}

	tagIDs := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.ID)
	}
	return tagIDs, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, items []domain.IngredientAmountRequest) ([]uuid.UUID, []int, error) {
	ids := make([]string, 0, len(items))
	amounts := make([]int, 0, len(items))
	for _, item := range items {
		if item.Amount < domain.MinAmount || item.Amount > domain.MaxAmount {
			return nil, nil, domain.ErrAmountOutOfRange
		}
		ids = append(ids, item.ID)
		amounts = append(amounts, item.Amount)
	}

	found, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ids) {
		return nil, nil, domain.ErrIngredientNotFound
	}

	ingredientIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		ingredientIDs = append(ingredientIDs, parsed)
	}
	return ingredientIDs, amounts, nil
}

func buildTagLinks(recipeID uuid.UUID, tagIDs []uuid.UUID) []*entities.RecipeTag {
	links := make([]*entities.RecipeTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, &entities.RecipeTag{
			ID:       uuid.New(),
			RecipeID: recipeID,
			TagID:    tagID,
		})
	}
	return links
}

func buildAmountRows(recipeID uuid.UUID, ingredientIDs []uuid.UUID, amounts []int) []*entities.RecipeIngredientAmount {
	rows := make([]*entities.RecipeIngredientAmount, 0, len(ingredientIDs))
	for i, ingredientID := range ingredientIDs {
		rows = append(rows, &entities.RecipeIngredientAmount{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: ingredientID,
			Amount:       amounts[i],
		})
	}
	return rows
}

func (s *recipeService) uploadImage(ctx context.Context, recipeID string, data string) (string, error) {
	raw, contentType, ext, err := image.DecodeBase64(data)
	if err != nil {
		return "", err
	}
	objectKey := fmt.Sprintf("recipes/%s.%s", recipeID, ext)
	return s.s3.UploadFile(ctx, objectKey, raw, contentType)
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, viewerID string) (domain.RecipeResponse, error) {
	isFavorited := false
	isInCart := false
	isSubscribed := false

	if viewerID != "" {
		var err error
		if isFavorited, err = s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID.String()); err != nil {
			return domain.RecipeResponse{}, err
		}
		if isInCart, err = s.recipeRepository.IsInCart(ctx, viewerID, recipe.ID.String()); err != nil {
			return domain.RecipeResponse{}, err
		}
		if viewerID != recipe.AuthorID.String() {
			if isSubscribed, err = s.userRepository.IsSubscribed(ctx, viewerID, recipe.AuthorID.String()); err != nil {
				return domain.RecipeResponse{}, err
			}
		}
	}

	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, link := range recipe.Tags {
		if link.Tag == nil {
			continue
		}
		tags = append(tags, domain.TagResponse{
			ID:    link.Tag.ID.String(),
			Name:  link.Tag.Name,
			Color: link.Tag.Color,
			Slug:  link.Tag.Slug,
		})
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, row := range recipe.Ingredients {
		if row.Ingredient == nil {
			continue
		}
		ingredients = append(ingredients, domain.RecipeIngredientResponse{
			ID:              row.Ingredient.ID.String(),
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	author := domain.UserResponse{}
	if recipe.Author != nil {
		author = domain.UserResponse{
			ID:           recipe.Author.ID.String(),
			Email:        recipe.Author.Email,
			Username:     recipe.Author.Username,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		}
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}, nil
}

func toRecipeShortResponse(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
