package user

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
	"github.com/kiber-king/foodgram-project-react/pkg/jwt"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:usersvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Subscription{},
		&entities.Recipe{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	return NewUserService(NewUserRepository(db), jwt.NewJWTService())
}

func register(t *testing.T, svc UserService, username string) domain.UserResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "Tester",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return res
}

func seedRecipe(t *testing.T, db *gorm.DB, authorID string, name string) *entities.Recipe {
	t.Helper()
	author, err := uuid.Parse(authorID)
	if err != nil {
		t.Fatalf("parse author id: %v", err)
	}
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author,
		Name:        name,
		CookingTime: 10,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return recipe
}

func TestRegister_DuplicateChecks(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	first := register(t, svc, "alice")
	if first.Username != "alice" || first.IsSubscribed {
		t.Fatalf("unexpected response: %+v", first)
	}

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "secret123",
	})
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Email:    "other@example.com",
		Username: "alice",
		Password: "secret123",
	})
	if !errors.Is(err, domain.ErrUsernameAlreadyTaken) {
		t.Fatalf("expected ErrUsernameAlreadyTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	register(t, svc, "alice")

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected non-empty token")
	}

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "missing@example.com", Password: "secret123"})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid for unknown email, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	alice := register(t, svc, "alice")

	err := svc.SetPassword(ctx, domain.SetPasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "changed456",
	}, alice.ID)
	if !errors.Is(err, domain.ErrPasswordInvalid) {
		t.Fatalf("expected ErrPasswordInvalid, got %v", err)
	}

	err = svc.SetPassword(ctx, domain.SetPasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "changed456",
	}, alice.ID)
	if err != nil {
		t.Fatalf("set password: %v", err)
	}

	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "changed456"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestGetProfile_SubscribedFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	if _, err := svc.Subscribe(ctx, alice.ID, bob.ID, 0); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	profile, err := svc.GetProfile(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !profile.IsSubscribed {
		t.Fatal("expected is_subscribed true for subscriber")
	}

	profile, err = svc.GetProfile(ctx, bob.ID, "")
	if err != nil {
		t.Fatalf("anonymous profile: %v", err)
	}
	if profile.IsSubscribed {
		t.Fatal("expected is_subscribed false for anonymous viewer")
	}

	profile, err = svc.GetProfile(ctx, bob.ID, bob.ID)
	if err != nil {
		t.Fatalf("self profile: %v", err)
	}
	if profile.IsSubscribed {
		t.Fatal("expected is_subscribed false for self")
	}

	if _, err := svc.GetProfile(ctx, uuid.NewString(), ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSubscribe(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	if _, err := svc.Subscribe(ctx, alice.ID, alice.ID, 0); !errors.Is(err, domain.ErrSelfSubscription) {
		t.Fatalf("expected ErrSelfSubscription, got %v", err)
	}
	if _, err := svc.Subscribe(ctx, alice.ID, uuid.NewString(), 0); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	seedRecipe(t, db, bob.ID, "Soup")
	seedRecipe(t, db, bob.ID, "Pasta")
	seedRecipe(t, db, bob.ID, "Salad")

	res, err := svc.Subscribe(ctx, alice.ID, bob.ID, 2)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !res.IsSubscribed || res.Username != "bob" {
		t.Fatalf("unexpected subscription response: %+v", res)
	}
	if res.RecipesCount != 3 {
		t.Fatalf("expected recipes_count 3, got %d", res.RecipesCount)
	}
	if len(res.Recipes) != 2 {
		t.Fatalf("expected 2 recipe previews with limit 2, got %d", len(res.Recipes))
	}

	if _, err := svc.Subscribe(ctx, alice.ID, bob.ID, 0); !errors.Is(err, domain.ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
}

// duplicateInsertRepo simulates a concurrent subscriber: the existence
// pre-check sees no row, but the insert itself hits the unique index.
type duplicateInsertRepo struct {
	UserRepository
}

func (r *duplicateInsertRepo) IsSubscribed(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *duplicateInsertRepo) CreateSubscription(context.Context, *entities.Subscription) error {
	return gorm.ErrDuplicatedKey
}

func TestSubscribe_DuplicateInsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(
		&duplicateInsertRepo{UserRepository: NewUserRepository(db)},
		jwt.NewJWTService(),
	)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	if _, err := svc.Subscribe(ctx, alice.ID, bob.ID, 0); !errors.Is(err, domain.ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed on duplicate insert, got %v", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")

	if err := svc.Unsubscribe(ctx, alice.ID, uuid.NewString()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.Unsubscribe(ctx, alice.ID, bob.ID); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}

	if _, err := svc.Subscribe(ctx, alice.ID, bob.ID, 0); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := svc.Unsubscribe(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := svc.Unsubscribe(ctx, alice.ID, bob.ID); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound on second unsubscribe, got %v", err)
	}
}

func TestGetSubscriptions(t *testing.T) {
	db := newTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")
	carol := register(t, svc, "carol")

	seedRecipe(t, db, bob.ID, "Soup")
	seedRecipe(t, db, carol.ID, "Pasta")
	seedRecipe(t, db, carol.ID, "Salad")

	if _, err := svc.Subscribe(ctx, alice.ID, bob.ID, 0); err != nil {
		t.Fatalf("subscribe bob: %v", err)
	}
	if _, err := svc.Subscribe(ctx, alice.ID, carol.ID, 0); err != nil {
		t.Fatalf("subscribe carol: %v", err)
	}

	subs, count, err := svc.GetSubscriptions(ctx, alice.ID, 1, domain.DefaultPageSize, 1)
	if err != nil {
		t.Fatalf("get subscriptions: %v", err)
	}
	if count != 2 || len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got count=%d len=%d", count, len(subs))
	}
	for _, sub := range subs {
		if !sub.IsSubscribed {
			t.Fatalf("expected is_subscribed true, got %+v", sub)
		}
		if len(sub.Recipes) > 1 {
			t.Fatalf("recipes_limit 1 exceeded: %+v", sub.Recipes)
		}
		if sub.Username == "carol" && sub.RecipesCount != 2 {
			t.Fatalf("expected carol recipes_count 2, got %d", sub.RecipesCount)
		}
	}

	subs, count, err = svc.GetSubscriptions(ctx, bob.ID, 1, domain.DefaultPageSize, 0)
	if err != nil {
		t.Fatalf("empty subscriptions: %v", err)
	}
	if count != 0 || len(subs) != 0 {
		t.Fatalf("expected no subscriptions, got count=%d", count)
	}
}
