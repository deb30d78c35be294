package dto

import "github.com/messagely/messagely/internal/model"

// UserListResponse wraps the user directory listing.
type UserListResponse struct {
	Users []model.Profile `json:"users"`
}

// UserResponse wraps a single user's detailed profile.
type UserResponse struct {
	User *model.ProfileDetail `json:"user"`
}
