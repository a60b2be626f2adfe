package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/google/uuid"
)

// Clock returns the current time; services take one so tests can pin it
type Clock func() time.Time

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// lookupError maps a repository miss to a 404 for resource
func lookupError(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.CreateNotFoundError(resource)
	}
	return fmt.Errorf("load %s: %w", resource, err)
}

// Filter keeps the items every predicate accepts, preserving order
func Filter[T any](items []T, preds ...func(T) bool) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// matchesText case-insensitive substring match against any of fields;
// an empty query matches everything
func matchesText(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// findBy first entity of repo matching pred
func findBy[T repository.Entity](ctx context.Context, repo repository.Repository[T], pred func(T) bool) (*T, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if pred(all[i]) {
			return &all[i], nil
		}
	}
	return nil, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
