// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. The username is the identity
// key and never changes after registration.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	JoinedAt     time.Time `json:"join_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Profile is the public projection of a user, safe to return to any
// authenticated caller. It never carries the password hash.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// ProfileDetail extends Profile with the account timestamps. Returned
// only to the user it describes.
type ProfileDetail struct {
	Profile
	JoinedAt    time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// PublicProfile returns the public projection of the user.
func (u *User) PublicProfile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

// Detail returns the detailed projection of the user.
func (u *User) Detail() ProfileDetail {
	return ProfileDetail{
		Profile:     u.PublicProfile(),
		JoinedAt:    u.JoinedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
