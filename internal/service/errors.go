// Package service provides business logic for the application.
package service

import "errors"

// Service errors.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrMessageNotFound  = errors.New("message not found")
	ErrUnknownRecipient = errors.New("recipient does not exist")
	ErrEmptyBody        = errors.New("message body is empty")
	ErrMissingFields    = errors.New("required fields are missing")
)
