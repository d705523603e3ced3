package core

import (
	"context"
	"fmt"
	"time"
)

// PolicyNumber is a human-readable policy identifier, OSG-YYYYMMDD-NNNN.
type PolicyNumber string

const (
	// PolicyNumberPrefix is the fixed literal at the start of every number.
	PolicyNumberPrefix = "OSG"

	// maxNumberAttempts bounds collision retries. The suffix space holds
	// 10,000 values per issue date; hitting the cap means the space is close
	// to saturated and the caller should know.
	maxNumberAttempts = 50

	numberSuffixSpace = 10000
)

// NumberExistsFunc reports whether a policy number has already been issued.
// It is supplied by the persistence layer.
type NumberExistsFunc func(ctx context.Context, number PolicyNumber) (bool, error)

// GenerateNumber builds a collision-checked policy number for the given issue
// date. intn draws the 4-digit suffix (injected for determinism in tests;
// callers normally pass rand.Intn). On collision the suffix is resampled, up
// to maxNumberAttempts times, after which ErrNumbersExhausted is returned.
//
// The exists check and the final insert are inherently racy when issuance
// runs concurrently; the store's unique index on the number is the authority,
// and the issuing service regenerates on a duplicate-key insert.
func GenerateNumber(ctx context.Context, issueDate time.Time, intn func(int) int, exists NumberExistsFunc) (PolicyNumber, error) {
	datePart := issueDate.Format("20060102")

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := PolicyNumber(fmt.Sprintf("%s-%s-%04d", PolicyNumberPrefix, datePart, intn(numberSuffixSpace)))

		taken, err := exists(ctx, number)
		if err != nil {
			return "", fmt.Errorf("check policy number: %w", err)
		}
		if !taken {
			return number, nil
		}
	}

	return "", ErrNumbersExhausted
}
