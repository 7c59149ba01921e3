package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `json:"role"`

	Recipes       []*Recipe       `gorm:"foreignKey:AuthorID"`
	Subscriptions []*Subscription `gorm:"foreignKey:UserID"`
	Timestamp
}

// Subscription is the user-follows-author join row.
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:uq_subscription_user_author" json:"user_id"`
	AuthorID uuid.UUID `gorm:"uniqueIndex:uq_subscription_user_author" json:"author_id"`

	User   *User `gorm:"foreignKey:UserID"`
	Author *User `gorm:"foreignKey:AuthorID"`
	Timestamp
}
