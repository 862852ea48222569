package services

import (
	"errors"

	"github.com/inamrestro/restaurant-app/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrInUse              = repository.ErrInUse
	ErrEmptyCart          = errors.New("your cart is empty")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)
