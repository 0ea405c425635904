package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sportsbook/internal/models"
)

func TestCreateAccountWithInitialDeposit(t *testing.T) {
	repo := newStubRepo()
	svc := &AccountService{Repo: repo}

	account, err := svc.CreateAccount(context.Background(), "user-1", decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance = %s, want 500", account.Balance)
	}
	entries, err := svc.Ledger(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if len(entries) != 1 || entries[0].EntryType != models.LedgerDeposit {
		t.Fatalf("ledger = %+v, want one deposit", entries)
	}
	if !entries[0].BalanceAfter.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balance after = %s, want 500", entries[0].BalanceAfter)
	}
}

func TestCreateAccountIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	svc := &AccountService{Repo: repo}

	if _, err := svc.CreateAccount(context.Background(), "user-1", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("first CreateAccount: %v", err)
	}
	account, err := svc.CreateAccount(context.Background(), "user-1", decimal.Zero)
	if err != nil {
		t.Fatalf("second CreateAccount: %v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance = %s, want the original 100", account.Balance)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	repo := newStubRepo()
	seedAccount(repo, "user-1", 10)
	svc := &AccountService{Repo: repo}

	if err := svc.Deposit(context.Background(), "user-1", decimal.Zero); err == nil {
		t.Fatalf("zero deposit accepted")
	}
	if err := svc.Deposit(context.Background(), "user-1", decimal.NewFromInt(-5)); err == nil {
		t.Fatalf("negative deposit accepted")
	}
}

func TestGetAccountNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := &AccountService{Repo: repo}

	_, err := svc.GetAccount(context.Background(), "missing")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestOddsRecorderSnapshotAndPurge(t *testing.T) {
	repo := newStubRepo()
	seedMarket(repo, "mkt-1")
	seedMarket(repo, "mkt-2")
	rec := &OddsRecorder{Repo: repo, Retention: time.Hour}

	if err := rec.SnapshotOnce(context.Background()); err != nil {
		t.Fatalf("SnapshotOnce: %v", err)
	}
	if len(repo.snapshots) != 4 {
		t.Fatalf("snapshots = %d, want 2 markets x 2 outcomes", len(repo.snapshots))
	}

	// Age the points past retention and sweep.
	for i := range repo.snapshots {
		repo.snapshots[i].RecordedAt = time.Now().UTC().Add(-2 * time.Hour)
	}
	if err := rec.PurgeOnce(context.Background()); err != nil {
		t.Fatalf("PurgeOnce: %v", err)
	}
	if len(repo.snapshots) != 0 {
		t.Fatalf("snapshots after purge = %d, want 0", len(repo.snapshots))
	}
}
