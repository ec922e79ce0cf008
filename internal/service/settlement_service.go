package service

import (
	"context"
	"errors"

	"darely/internal/domain"
	"darely/internal/models"
)

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCreatorUnresolvable = errors.New("room not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDuplicateRequest    = errors.New("duplicate request")
	ErrSelfSettlement      = errors.New("cannot pay yourself")
)

// SettlementStore is the set of writes a settlement performs. A store handle
// is only ever valid inside one unit of work: everything written through it
// commits together or not at all.
type SettlementStore interface {
	DebitWallet(userID uint, amountCents int64) error
	CreditWallet(userID uint, amountCents int64) error
	CreateRequest(req *models.InteractionRequest) error
	CreateQueueEntry(entry *models.QueueEntry) error
	CreateLedgerEntry(txn *models.WalletTransaction) error
}

// SettlementUnitOfWork runs fn atomically. An error from fn discards every
// store write.
type SettlementUnitOfWork interface {
	Do(ctx context.Context, fn func(SettlementStore) error) error
}

// RoomDirectory resolves the current host of a live room.
type RoomDirectory interface {
	ResolveHost(roomID uint) (uint, error)
}

// RequestLookup finds prior settlements by idempotency key.
type RequestLookup interface {
	GetByIdempotencyKey(key string) (*models.InteractionRequest, error)
}

// SettlementService moves a fixed amount from a fan's wallet to a creator's
// wallet and records the interaction. The debit, the credit (with lazy
// wallet provisioning), the request row, the queue entry and both ledger
// entries are one atomic unit, so a fan can never be charged without the
// creator being paid and surfaced the request.
type SettlementService struct {
	uow      SettlementUnitOfWork
	rooms    RoomDirectory
	requests RequestLookup
}

func NewSettlementService(uow SettlementUnitOfWork, rooms RoomDirectory, requests RequestLookup) *SettlementService {
	return &SettlementService{uow: uow, rooms: rooms, requests: requests}
}

// SettleInput carries a priced fan action. Amount and content must already
// be resolved (tier lookup, custom minimum, tip validation) by the caller.
type SettleInput struct {
	FanID          uint
	RoomID         uint
	Kind           string
	Tier           string
	Content        string
	AmountCents    int64
	IdempotencyKey string
}

// Settle executes the atomic fan-to-creator transfer. On ErrDuplicateRequest
// the previously settled request is returned so callers can treat the retry
// as a no-op instead of re-charging.
func (s *SettlementService) Settle(ctx context.Context, in SettleInput) (*models.InteractionRequest, *models.QueueEntry, error) {
	if in.AmountCents <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	creatorID, err := s.rooms.ResolveHost(in.RoomID)
	if err != nil {
		return nil, nil, ErrCreatorUnresolvable
	}
	if creatorID == in.FanID {
		return nil, nil, ErrSelfSettlement
	}
	if prev, err := s.requests.GetByIdempotencyKey(in.IdempotencyKey); err == nil && prev != nil {
		return prev, nil, ErrDuplicateRequest
	}

	req := &models.InteractionRequest{
		RoomID:         in.RoomID,
		FanID:          in.FanID,
		CreatorID:      creatorID,
		Kind:           in.Kind,
		Tier:           in.Tier,
		Content:        in.Content,
		AmountCents:    in.AmountCents,
		Status:         domain.RequestStatusPending,
		IdempotencyKey: in.IdempotencyKey,
	}
	var entry *models.QueueEntry

	err = s.uow.Do(ctx, func(st SettlementStore) error {
		if err := st.DebitWallet(in.FanID, in.AmountCents); err != nil {
			return err
		}
		if err := st.CreditWallet(creatorID, in.AmountCents); err != nil {
			return err
		}
		if err := st.CreateRequest(req); err != nil {
			return err
		}
		entry = &models.QueueEntry{
			RequestID:   req.ID,
			RoomID:      in.RoomID,
			CreatorID:   creatorID,
			FanID:       in.FanID,
			Kind:        in.Kind,
			AmountCents: in.AmountCents,
			Status:      domain.RequestStatusPending,
			Prompt:      in.Content,
		}
		if err := st.CreateQueueEntry(entry); err != nil {
			return err
		}
		if err := st.CreateLedgerEntry(&models.WalletTransaction{
			UserID:      in.FanID,
			AmountCents: -in.AmountCents,
			Type:        domain.TxTypeInteraction,
			Reference:   in.IdempotencyKey,
		}); err != nil {
			return err
		}
		return st.CreateLedgerEntry(&models.WalletTransaction{
			UserID:      creatorID,
			AmountCents: in.AmountCents,
			Type:        domain.TxTypeEarning,
			Reference:   in.IdempotencyKey,
		})
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			return nil, nil, ErrInsufficientFunds
		}
		// A concurrent retry may have won the insert race on the
		// idempotency key; if so this attempt is the duplicate.
		if prev, lookupErr := s.requests.GetByIdempotencyKey(in.IdempotencyKey); lookupErr == nil && prev != nil {
			return prev, nil, ErrDuplicateRequest
		}
		return nil, nil, err
	}
	return req, entry, nil
}

// Status returns the settled request for an idempotency key, letting a
// caller that timed out discover the actual outcome instead of retrying
// blindly.
func (s *SettlementService) Status(idempotencyKey string) (*models.InteractionRequest, error) {
	return s.requests.GetByIdempotencyKey(idempotencyKey)
}
