package ingredient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kiber-king/foodgram-project-react/domain"
	"github.com/kiber-king/foodgram-project-react/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ingredientsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		item := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: "g"}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

func TestGetIngredients_NameSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()

	seed(t, db, "salt", "sea salt", "sugar", "pepper")

	res, err := svc.GetIngredients(ctx, "salt")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// Both the prefix match and the substring match come back.
	if len(res) != 2 {
		t.Fatalf("expected 2 matches for 'salt', got %d: %+v", len(res), res)
	}
	if res[0].Name != "salt" && res[1].Name != "salt" {
		t.Fatalf("expected exact match present, got %+v", res)
	}

	res, err = svc.GetIngredients(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(res) != 4 {
		t.Fatalf("expected full listing, got %d", len(res))
	}

	res, err = svc.GetIngredients(ctx, "cinnamon")
	if err != nil {
		t.Fatalf("no match search: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected no matches, got %+v", res)
	}
}

func TestGetIngredientDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	ctx := context.Background()

	item := &entities.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "g"}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := svc.GetIngredientDetail(ctx, item.ID.String())
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if res.Name != "flour" || res.MeasurementUnit != "g" {
		t.Fatalf("unexpected ingredient: %+v", res)
	}

	if _, err := svc.GetIngredientDetail(ctx, uuid.NewString()); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}
