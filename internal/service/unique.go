// Package service contains the business logic layer: validation,
// permissions, notification fan-out, and the retry loop that resolves
// unique-value collisions for slugs and generated usernames.
package service

import (
	"context"
	"fmt"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// maxUniqueAttempts bounds the collision retry loop. With base plus
// numbered suffixes this allows base, base-1, ... base-99 before the
// writer gives up.
const maxUniqueAttempts = 100

// createWithUniqueValue runs insert with candidate values derived from
// base until one sticks. The first attempt uses base unchanged; each
// retry after a conflict on constraint appends "-N" with N counting up
// from 1. Conflicts on other constraints, and every non-conflict error,
// abort immediately and are returned as-is.
func createWithUniqueValue(ctx context.Context, base, constraint string, insert func(ctx context.Context, candidate string) error) (string, error) {
	candidate := base
	for attempt := 1; ; attempt++ {
		err := insert(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !repository.IsConflict(err, constraint) {
			return "", err
		}
		if attempt >= maxUniqueAttempts {
			return "", apperror.Internal("SLUG_ERROR", "could not generate a unique value")
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}
