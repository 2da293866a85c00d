package privacy

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront/internal/digest"
	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

const (
	// DefaultStretchRounds is the key-stretching work factor applied when
	// deriving an anonymized label.
	DefaultStretchRounds = 30000
	// DefaultLabelLength is how many hex characters of the stretched digest
	// make it into the label. 12 chars is ~48 bits, enough that collisions
	// are negligible at realistic user counts.
	DefaultLabelLength = 12

	labelPrefix  = "anon_"
	erasedDomain = "@example.invalid"
	saltBytes    = 32
)

// Params tunes label derivation. Zero values fall back to the defaults.
type Params struct {
	StretchRounds int
	LabelLength   int
}

// Service irreversibly anonymizes a user's personal data across every table
// that references the user, inside a single transaction.
type Service struct {
	repo     userrepo.Repository
	rounds   int
	labelLen int
	now      func() time.Time
	logger   *log.Logger
}

// New creates a Service. The repository supplies the erasure transaction;
// the engine itself holds no state between calls.
func New(repo userrepo.Repository, logger *log.Logger, p Params) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	rounds := p.StretchRounds
	if rounds <= 0 {
		rounds = DefaultStretchRounds
	}
	labelLen := p.LabelLength
	if labelLen <= 0 || labelLen > 64 {
		labelLen = DefaultLabelLength
	}
	return &Service{
		repo:     repo,
		rounds:   rounds,
		labelLen: labelLen,
		now:      time.Now,
		logger:   logger,
	}
}

// AnonymizeUser scrubs all personal data belonging to userID. It is a silent
// no-op when the user does not exist or was already erased, so repeated and
// concurrent calls are always safe. Any failure mid-cascade rolls the whole
// transaction back; a partially scrubbed user is never observable.
func (s *Service) AnonymizeUser(ctx context.Context, userID int64) error {
	tx, err := s.repo.BeginErasure(ctx)
	if err != nil {
		return fmt.Errorf("begin erasure: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := tx.LockUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lock user %d: %w", userID, err)
	}
	if u.Status == domain.UserStatusErased || u.AnonymizedTime != nil {
		return nil
	}

	label, err := s.deriveLabel(u)
	if err != nil {
		return err
	}
	email := label + erasedDomain
	when := s.now().UTC()

	// Fixed top-down write order keeps lock acquisition deadlock-free.
	if err := tx.ScrubUser(ctx, userID, label, email, when); err != nil {
		return fmt.Errorf("scrub user %d: %w", userID, err)
	}
	if err := tx.ScrubShippingAddresses(ctx, userID, label); err != nil {
		return fmt.Errorf("scrub addresses for user %d: %w", userID, err)
	}
	if err := tx.ScrubOrders(ctx, userID, label, email); err != nil {
		return fmt.Errorf("scrub orders for user %d: %w", userID, err)
	}
	if err := tx.ScrubPayments(ctx, userID, label); err != nil {
		return fmt.Errorf("scrub payments for user %d: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit erasure for user %d: %w", userID, err)
	}
	s.logger.Printf("privacy: user=%d erased tag=%s", userID, label)
	return nil
}

// deriveLabel builds the anonymized replacement identifier from the user's
// personal fields plus a fresh random salt. The salt is never stored, so the
// label cannot be recomputed or reversed after the call returns.
func (s *Service) deriveLabel(u *domain.User) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	source := strings.Join([]string{
		u.Email,
		u.FirstName,
		u.LastName,
		u.Username,
		hex.EncodeToString(salt),
	}, "|")
	return labelPrefix + digest.Stretch(source, s.rounds)[:s.labelLen], nil
}
