// Package verification issues and redeems one-time email verification
// tokens. Tokens do not expire; they stay valid until redeemed or replaced
// by a resend.
package verification

import (
	"context"
	"fmt"

	"github.com/burakkoc5/falimatik/internal/common"
	"github.com/burakkoc5/falimatik/internal/server/models"
)

// TokenBytes is the entropy of a verification token before encoding.
const TokenBytes = 32

// TokenStore is the slice of the credential store the manager needs.
type TokenStore interface {
	AssignVerificationToken(ctx context.Context, userID, token string) error
	RedeemVerificationToken(ctx context.Context, token string) (*models.User, error)
}

type Manager struct {
	store    TokenStore
	newToken func() (string, error)
}

func NewManager(store TokenStore) *Manager {
	return &Manager{
		store:    store,
		newToken: func() (string, error) { return common.MakeRandURLToken(TokenBytes) },
	}
}

// Issue generates a fresh token for an unverified user and stores it,
// replacing any previous one. For a verified user nothing is written and
// common.ErrAlreadyVerified is returned.
func (m *Manager) Issue(ctx context.Context, u *models.User) (string, error) {
	if u.IsVerified {
		return u.VerificationToken, common.ErrAlreadyVerified
	}

	token, err := m.newToken()
	if err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	if err := m.store.AssignVerificationToken(ctx, u.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem verifies the owner of token. Unknown and already used tokens both
// yield common.ErrorNotFound. Of several concurrent redemptions of one token
// exactly one succeeds.
func (m *Manager) Redeem(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return m.store.RedeemVerificationToken(ctx, token)
}
