package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// SendTransferRequest represents a request to send money to another user.
// The sender is the authenticated caller; the recipient is addressed by
// username.
type SendTransferRequest struct {
	ToUsername string          `json:"to_username"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *SendTransferRequest) ToUseCaseInput(senderID string) usecase.SendInput {
	return usecase.SendInput{
		SenderID:         senderID,
		ReceiverUsername: r.ToUsername,
		Amount:           r.Amount,
	}
}

// ListTransfersRequest represents query parameters for listing transfers.
type ListTransfersRequest struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ToUseCaseInput converts to use case input.
func (r *ListTransfersRequest) ToUseCaseInput(viewerID string) usecase.ListTransfersInput {
	return usecase.ListTransfersInput{
		ViewerID: viewerID,
		From:     r.From,
		To:       r.To,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}
