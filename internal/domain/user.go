package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the local row for an identity-provider account. Subject is the
// provider's stable subject identifier; the row is upserted on every login.
type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Subject     string    `json:"-" gorm:"uniqueIndex;not null"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserSession is one browser session's identity state: created on login,
// deleted on logout or on any authentication error. Token holds the
// provider's OAuth token serialized as JSON; the browser only ever holds a
// signed cookie naming this row, so deleting the row revokes the cookie.
type UserSession struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Token     datatypes.JSON `json:"-" gorm:"type:jsonb"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Profile is the userinfo payload returned by the identity provider. Only
// Subject is required; a payload without it is treated as malformed.
type Profile struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}
