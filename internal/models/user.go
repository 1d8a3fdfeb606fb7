package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex;size:150"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	ProfilePic  string `json:"profile_pic,omitempty"`
	Bio         string `json:"bio,omitempty"`
	FirebaseUID string `json:"-" gorm:"index"` // Link to Firebase User UID for Google sign-in
}

// ToPublic strips everything that should not leave the server.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		Bio:        u.Bio,
	}
}

// PublicUser is the user shape returned by friend/search endpoints.
type PublicUser struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Bio        string `json:"bio,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username   string `json:"username,omitempty" validate:"omitempty,min=2,max=150"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
