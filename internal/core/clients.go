package core

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Client is a policyholder record.
type Client struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Passport string `json:"passport"` // 10 digits, unique
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ClientRepo interface {
	Create(ctx context.Context, c Client) error
	Get(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Client, error)
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return fmt.Errorf("%w: missing full name", ErrValidation)
	}
	passport := strings.ReplaceAll(c.Passport, " ", "")
	if len(passport) != 10 || !allDigits(passport) {
		return fmt.Errorf("%w: passport must contain 10 digits", ErrValidation)
	}
	if c.Phone != "" && (!strings.HasPrefix(c.Phone, "+") || !allDigits(c.Phone[1:])) {
		return fmt.Errorf("%w: phone must start with '+' followed by digits", ErrValidation)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email must contain '@'", ErrValidation)
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var (
	ErrClientNotFound    = fmt.Errorf("%w: client not found", ErrNotFound)
	ErrClientExists      = fmt.Errorf("%w: client with this passport already exists", ErrConflict)
	ErrClientHasVehicles = fmt.Errorf("%w: client still has registered vehicles", ErrConflict)
)
