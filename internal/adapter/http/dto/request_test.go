package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payrail/payrail/internal/usecase"
)

func TestRegisterRequest_ToUseCaseInput(t *testing.T) {
	req := &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "s3cret-pass",
	}

	got := req.ToUseCaseInput()
	want := usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "s3cret-pass",
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestLoginRequest_ToUseCaseInput(t *testing.T) {
	req := &LoginRequest{Username: "alice", Password: "s3cret-pass"}

	got := req.ToUseCaseInput()
	if got.Username != "alice" || got.Password != "s3cret-pass" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestSendTransferRequest_ToUseCaseInput(t *testing.T) {
	req := &SendTransferRequest{
		ToUsername: "bob",
		Amount:     decimal.RequireFromString("12.34"),
	}

	got := req.ToUseCaseInput("usr-alice")
	if got.SenderID != "usr-alice" || got.ReceiverUsername != "bob" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}

	if !got.Amount.Equal(decimal.RequireFromString("12.34")) {
		t.Fatalf("expected amount 12.34, got %s", got.Amount)
	}
}

func TestListTransfersRequest_ToUseCaseInput(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	req := &ListTransfersRequest{
		From:   &from,
		To:     &to,
		Limit:  10,
		Offset: 20,
	}

	got := req.ToUseCaseInput("usr-1")
	if got.ViewerID != "usr-1" || got.From != &from || got.To != &to {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}

	if got.Limit != 10 || got.Offset != 20 {
		t.Fatalf("expected pagination to be carried over, got %+v", got)
	}
}
