package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"zellalite/internal/config"
	"zellalite/internal/models"
	"zellalite/internal/repository"
)

type AttachmentService struct {
	Repo   repository.Repository
	Trades *TradeService
	Config config.UploadConfig
	Logger *zap.Logger
}

// Save rejects oversized and empty uploads before anything touches disk or
// the database.
func (s *AttachmentService) Save(ctx context.Context, userID, tradeID uint64, filename, contentType string, contents []byte) (*models.Attachment, error) {
	if int64(len(contents)) > s.Config.MaxSize {
		return nil, fmt.Errorf("%w: max %d bytes", ErrTooLarge, s.Config.MaxSize)
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrValidation)
	}
	trade, err := s.Trades.Get(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := os.MkdirAll(s.Config.Dir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%d_%d_%s", trade.ID, time.Now().UTC().Unix(), filepath.Base(filename))
	path := filepath.Join(s.Config.Dir, name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return nil, err
	}

	item := &models.Attachment{
		TradeID:     trade.ID,
		Filename:    filename,
		ContentType: contentType,
		Path:        path,
		Size:        int64(len(contents)),
	}
	if err := s.Repo.CreateAttachment(ctx, item); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("attachment stored",
			zap.Uint64("trade_id", trade.ID),
			zap.String("filename", filename),
			zap.Int64("size", item.Size),
		)
	}
	return item, nil
}

func (s *AttachmentService) List(ctx context.Context, userID, tradeID uint64) ([]models.Attachment, error) {
	if _, err := s.Trades.Get(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	return s.Repo.ListAttachments(ctx, tradeID)
}

func (s *AttachmentService) Get(ctx context.Context, userID, attachmentID uint64) (*models.Attachment, error) {
	item, err := s.Repo.GetAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: attachment", ErrNotFound)
	}
	if _, err := s.Trades.Get(ctx, userID, item.TradeID); err != nil {
		return nil, fmt.Errorf("%w: attachment", ErrNotFound)
	}
	return item, nil
}

func (s *AttachmentService) Delete(ctx context.Context, userID, attachmentID uint64) error {
	item, err := s.Repo.GetAttachment(ctx, attachmentID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: attachment", ErrNotFound)
	}
	if _, err := s.Trades.Get(ctx, userID, item.TradeID); err != nil {
		return fmt.Errorf("%w: attachment", ErrNotFound)
	}
	return s.Repo.DeleteAttachment(ctx, attachmentID)
}
