package service

import (
	"context"
	"errors"
	"testing"
)

func TestTagGetOrCreate_CaseInsensitive(t *testing.T) {
	repo := newStubRepo()
	svc := &TagService{Repo: repo}

	first, err := svc.GetOrCreate(context.Background(), 1, "Breakout")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.GetOrCreate(context.Background(), 1, "breakout")
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("got new tag %d, want existing %d", second.ID, first.ID)
	}
	if len(repo.tags) != 1 {
		t.Fatalf("tags=%d want=1", len(repo.tags))
	}
}

func TestTagGetOrCreate_ScopedPerUser(t *testing.T) {
	repo := newStubRepo()
	svc := &TagService{Repo: repo}

	a, err := svc.GetOrCreate(context.Background(), 1, "scalp")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.GetOrCreate(context.Background(), 2, "scalp")
	if err != nil {
		t.Fatalf("create for other user: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("tags shared across users")
	}
}

func TestTagGetOrCreate_RejectsBlankName(t *testing.T) {
	svc := &TagService{Repo: newStubRepo()}
	if _, err := svc.GetOrCreate(context.Background(), 1, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("err=%v want ErrValidation", err)
	}
}
