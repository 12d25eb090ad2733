package auth

import (
	"time"

	"github.com/sohaibalidev/Zeevno/internal/cart"
)

type User struct {
	Email       string          `bson:"email" json:"email"`
	FullName    string          `bson:"fullName" json:"fullName"`
	Phone       string          `bson:"phone" json:"-"`
	Address     string          `bson:"address" json:"-"`
	Roles       []string        `bson:"roles" json:"-"`
	Cart        []cart.LineItem `bson:"cart" json:"-"`
	CreatedAt   time.Time       `bson:"createdAt" json:"-"`
	LastLoginAt time.Time       `bson:"lastLoginAt" json:"-"`
}

func (u *User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

const (
	PurposeRegister = "register"
	PurposeLogin    = "login"
)

// MagicLink is a single-use sign-in token delivered by email. Register
// links live 24h (the user may not be at their inbox), login links 15m.
type MagicLink struct {
	Token     string    `bson:"token"`
	Email     string    `bson:"email"`
	Purpose   string    `bson:"purpose"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// PendingRegistration holds submitted user data until the magic link
// is clicked; only then does a real user document exist.
type PendingRegistration struct {
	Email     string    `bson:"email"`
	FullName  string    `bson:"fullName"`
	Phone     string    `bson:"phone"`
	Address   string    `bson:"address"`
	Roles     []string  `bson:"roles"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}
