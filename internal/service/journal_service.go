package service

import (
	"context"
	"fmt"
	"strings"

	"zellalite/internal/models"
	"zellalite/internal/repository"
)

type JournalService struct {
	Repo   repository.Repository
	Trades *TradeService
}

func (s *JournalService) Add(ctx context.Context, userID, tradeID uint64, body string) (*models.JournalEntry, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", ErrValidation)
	}
	if _, err := s.Trades.Get(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	entry := &models.JournalEntry{TradeID: tradeID, Body: body}
	if err := s.Repo.CreateJournalEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) List(ctx context.Context, userID, tradeID uint64) ([]models.JournalEntry, error) {
	if _, err := s.Trades.Get(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	return s.Repo.ListJournalEntries(ctx, tradeID)
}

// Delete resolves ownership through the parent trade. A foreign entry is
// reported exactly like a missing one.
func (s *JournalService) Delete(ctx context.Context, userID, entryID uint64) error {
	entry, err := s.Repo.GetJournalEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("%w: journal entry", ErrNotFound)
	}
	if _, err := s.Trades.Get(ctx, userID, entry.TradeID); err != nil {
		return fmt.Errorf("%w: journal entry", ErrNotFound)
	}
	return s.Repo.DeleteJournalEntry(ctx, entryID)
}
