package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/engine"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// CreateAccount opens an account for the user, crediting an optional
// initial deposit. Creating an account that already exists is a no-op.
func (s *AccountService) CreateAccount(ctx context.Context, userID string, initialDeposit decimal.Decimal) (*models.Account, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("account service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	if initialDeposit.IsNegative() {
		return nil, engine.ErrInvalidAmount
	}

	if err := s.Repo.CreateAccount(ctx, &models.Account{UserID: userID}); err != nil {
		return nil, err
	}
	if initialDeposit.IsPositive() {
		if err := s.Deposit(ctx, userID, initialDeposit); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetAccount(ctx, userID)
}

func (s *AccountService) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("account service not configured")
	}
	account, err := s.Repo.GetAccount(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	return account, err
}

func (s *AccountService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) error {
	if s == nil || s.Repo == nil {
		return errors.New("account service not configured")
	}
	if !amount.IsPositive() {
		return engine.ErrInvalidAmount
	}
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.ApplyBalanceChangeTx(ctx, tx, &models.LedgerEntry{
			UserID:    userID,
			EntryType: models.LedgerDeposit,
			Amount:    amount,
		})
	})
	if err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("deposit applied",
			zap.String("user_id", userID),
			zap.String("amount", amount.String()))
	}
	return nil
}

func (s *AccountService) Ledger(ctx context.Context, userID string, limit int) ([]models.LedgerEntry, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("account service not configured")
	}
	return s.Repo.ListLedgerEntries(ctx, userID, limit)
}
