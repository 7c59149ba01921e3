package tag

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
	dsn := fmt.Sprintf("file:tagsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.Tag{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestGetTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(NewTagRepository(db))
	ctx := context.Background()

	for _, slug := range []string{"breakfast", "lunch", "dinner"} {
		tg := &entities.Tag{ID: uuid.New(), Name: slug, Color: "#49B64E", Slug: slug}
		if err := db.Create(tg).Error; err != nil {
			t.Fatalf("seed tag: %v", err)
		}
	}

	res, err := svc.GetTags(ctx)
	if err != nil {
		t.Fatalf("get tags: %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(res))
	}
}

func TestGetTagDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewTagService(NewTagRepository(db))
	ctx := context.Background()

	tg := &entities.Tag{ID: uuid.New(), Name: "Dinner", Color: "#8775D2", Slug: "dinner"}
	if err := db.Create(tg).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	res, err := svc.GetTagDetail(ctx, tg.ID.String())
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if res.Slug != "dinner" || res.Color != "#8775D2" {
		t.Fatalf("unexpected tag: %+v", res)
	}

	if _, err := svc.GetTagDetail(ctx, uuid.NewString()); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
