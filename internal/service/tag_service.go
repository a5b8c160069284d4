package service

import (
	"context"
	"fmt"
	"strings"

	"zellalite/internal/models"
	"zellalite/internal/repository"
)

type TagService struct {
	Repo repository.Repository
}

// GetOrCreate returns the user's existing tag under a case-insensitive name
// match instead of erroring on duplicates. A concurrent create can still trip
// the unique index; that race surfaces as a conflict.
func (s *TagService) GetOrCreate(ctx context.Context, userID uint64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", ErrValidation)
	}
	existing, err := s.Repo.GetTagByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	tag := &models.Tag{UserID: userID, Name: name}
	if err := s.Repo.CreateTag(ctx, tag); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: tag exists", ErrConflict)
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context, userID uint64) ([]models.Tag, error) {
	return s.Repo.ListTags(ctx, userID)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
