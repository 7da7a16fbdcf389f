package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrPlayerNotFound(id string) *AppError {
	return &AppError{Code: "PLAYER_NOT_FOUND", Message: fmt.Sprintf("player %s not found", id), Status: 404}
}

func ErrInsufficientFunds(have, need int64) *AppError {
	return &AppError{Code: "INSUFFICIENT_FUNDS", Message: fmt.Sprintf("insufficient coins: have %d, need %d", have, need), Status: 400}
}

func ErrBetNotFound(id string) *AppError {
	return &AppError{Code: "BET_NOT_FOUND", Message: fmt.Sprintf("bet %s not found", id), Status: 404}
}

func ErrBetNotOpen(msg string) *AppError {
	return &AppError{Code: "BET_NOT_OPEN", Message: msg, Status: 409}
}

func ErrInvalidBetDetails(msg string) *AppError {
	return &AppError{Code: "INVALID_BET_DETAILS", Message: msg, Status: 400}
}

func ErrMatchNotPlayable(id string) *AppError {
	return &AppError{Code: "MATCH_NOT_PLAYABLE", Message: fmt.Sprintf("match %s is missing or not played yet", id), Status: 409}
}

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
