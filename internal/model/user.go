// Package model defines database models
package model

import "time"

// Subscription tiers a user can be on
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"-"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Subscription string `gorm:"not null;default:starter;check:subscription IN ('starter','pro','business')" json:"subscription"`
	AvatarURL    string `json:"avatarURL"`

	// Token holds the current session token. A request presenting a JWT
	// that doesn't match this column is rejected, so logout actually
	// invalidates the old token
	Token *string `json:"-"`

	Verified          bool    `gorm:"default:false" json:"-"`
	VerificationToken *string `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
