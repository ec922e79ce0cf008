package service

import (
	"context"
	"errors"
	"testing"

	"darely/internal/domain"
	"darely/internal/models"
)

// memStore is an in-memory SettlementStore with failure injection, backed by
// memUnitOfWork which restores a snapshot when the unit of work fails.
type memStore struct {
	wallets  map[uint]int64
	requests []*models.InteractionRequest
	queue    []*models.QueueEntry
	ledger   []*models.WalletTransaction
	nextID   uint

	failCreditWallet bool
	failQueueEntry   bool
	failLedger       bool
}

func newMemStore() *memStore {
	return &memStore{wallets: make(map[uint]int64), nextID: 1}
}

func (m *memStore) DebitWallet(userID uint, amountCents int64) error {
	if m.wallets[userID] < amountCents {
		return ErrInsufficientFunds
	}
	m.wallets[userID] -= amountCents
	return nil
}

func (m *memStore) CreditWallet(userID uint, amountCents int64) error {
	if m.failCreditWallet {
		return errors.New("injected credit failure")
	}
	m.wallets[userID] += amountCents
	return nil
}

func (m *memStore) CreateRequest(req *models.InteractionRequest) error {
	for _, r := range m.requests {
		if r.IdempotencyKey == req.IdempotencyKey {
			return errors.New("duplicate key")
		}
	}
	req.ID = m.nextID
	m.nextID++
	m.requests = append(m.requests, req)
	return nil
}

func (m *memStore) CreateQueueEntry(entry *models.QueueEntry) error {
	if m.failQueueEntry {
		return errors.New("injected queue failure")
	}
	entry.ID = m.nextID
	m.nextID++
	m.queue = append(m.queue, entry)
	return nil
}

func (m *memStore) CreateLedgerEntry(txn *models.WalletTransaction) error {
	if m.failLedger {
		return errors.New("injected ledger failure")
	}
	m.ledger = append(m.ledger, txn)
	return nil
}

func (m *memStore) GetByIdempotencyKey(key string) (*models.InteractionRequest, error) {
	for _, r := range m.requests {
		if r.IdempotencyKey == key {
			return r, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *memStore) snapshot() *memStore {
	cp := &memStore{
		wallets: make(map[uint]int64, len(m.wallets)),
		nextID:  m.nextID,
	}
	for k, v := range m.wallets {
		cp.wallets[k] = v
	}
	cp.requests = append(cp.requests, m.requests...)
	cp.queue = append(cp.queue, m.queue...)
	cp.ledger = append(cp.ledger, m.ledger...)
	return cp
}

func (m *memStore) restore(s *memStore) {
	m.wallets = s.wallets
	m.requests = s.requests
	m.queue = s.queue
	m.ledger = s.ledger
	m.nextID = s.nextID
}

// memUnitOfWork rolls the store back to the pre-call snapshot on error,
// mirroring a database transaction.
type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Do(_ context.Context, fn func(SettlementStore) error) error {
	snap := u.store.snapshot()
	if err := fn(u.store); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

type memRooms struct {
	hosts map[uint]uint
}

func (r *memRooms) ResolveHost(roomID uint) (uint, error) {
	host, ok := r.hosts[roomID]
	if !ok {
		return 0, errors.New("record not found")
	}
	return host, nil
}

const (
	fanID     = uint(1)
	creatorID = uint(2)
	roomID    = uint(10)
)

func newTestService(store *memStore) *SettlementService {
	rooms := &memRooms{hosts: map[uint]uint{roomID: creatorID}}
	return NewSettlementService(&memUnitOfWork{store: store}, rooms, store)
}

func bronzeInput(key string) SettleInput {
	return SettleInput{
		FanID:          fanID,
		RoomID:         roomID,
		Kind:           domain.KindSystemDare,
		Tier:           domain.TierBronze,
		Content:        "Do a spin",
		AmountCents:    500,
		IdempotencyKey: key,
	}
}

func TestSettleMovesMoneyAndRecordsEverything(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000

	req, entry, err := newTestService(store).Settle(context.Background(), bronzeInput("key-1"))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	if store.wallets[fanID] != 4500 {
		t.Errorf("fan balance = %d, want 4500", store.wallets[fanID])
	}
	if store.wallets[creatorID] != 500 {
		t.Errorf("creator balance = %d, want 500", store.wallets[creatorID])
	}
	if req.Status != domain.RequestStatusPending {
		t.Errorf("request status = %s, want PENDING", req.Status)
	}
	if req.CreatorID != creatorID {
		t.Errorf("request creator = %d, want %d", req.CreatorID, creatorID)
	}
	if entry == nil || entry.RequestID != req.ID {
		t.Fatalf("queue entry not linked to request: %+v", entry)
	}
	if len(store.ledger) != 2 {
		t.Fatalf("ledger entries = %d, want 2", len(store.ledger))
	}
	var sum int64
	for _, l := range store.ledger {
		sum += l.AmountCents
	}
	if sum != 0 {
		t.Errorf("ledger does not balance: sum = %d", sum)
	}
}

func TestSettleInsufficientFunds(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 499

	_, _, err := newTestService(store).Settle(context.Background(), bronzeInput("key-1"))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if store.wallets[fanID] != 499 {
		t.Errorf("fan balance changed on failed settle: %d", store.wallets[fanID])
	}
	if len(store.requests) != 0 || len(store.queue) != 0 || len(store.ledger) != 0 {
		t.Error("failed settle left records behind")
	}
}

func TestSettleRollsBackOnQueueFailure(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000
	store.failQueueEntry = true

	_, _, err := newTestService(store).Settle(context.Background(), bronzeInput("key-1"))
	if err == nil {
		t.Fatal("expected error from injected queue failure")
	}
	// Debit and credit must have been unwound with the queue write.
	if store.wallets[fanID] != 5000 {
		t.Errorf("fan balance = %d, want 5000 after rollback", store.wallets[fanID])
	}
	if store.wallets[creatorID] != 0 {
		t.Errorf("creator balance = %d, want 0 after rollback", store.wallets[creatorID])
	}
	if len(store.requests) != 0 {
		t.Error("request row survived rollback")
	}
}

func TestSettleRollsBackOnLedgerFailure(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000
	store.failLedger = true

	_, _, err := newTestService(store).Settle(context.Background(), bronzeInput("key-1"))
	if err == nil {
		t.Fatal("expected error from injected ledger failure")
	}
	if store.wallets[fanID] != 5000 || store.wallets[creatorID] != 0 {
		t.Errorf("balances not restored: fan=%d creator=%d", store.wallets[fanID], store.wallets[creatorID])
	}
}

func TestSettleIdempotentRetry(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000
	svc := newTestService(store)

	first, _, err := svc.Settle(context.Background(), bronzeInput("retry-key"))
	if err != nil {
		t.Fatalf("first settle: %v", err)
	}
	second, _, err := svc.Settle(context.Background(), bronzeInput("retry-key"))
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("err = %v, want ErrDuplicateRequest", err)
	}
	if second == nil || second.ID != first.ID {
		t.Fatalf("retry did not return the original request: %+v", second)
	}
	if store.wallets[fanID] != 4500 {
		t.Errorf("fan charged twice: balance = %d", store.wallets[fanID])
	}
	if len(store.requests) != 1 {
		t.Errorf("requests = %d, want 1", len(store.requests))
	}
}

func TestSettleCreditProvisionsCreatorWallet(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 1000
	// creator has no wallet entry at all

	_, _, err := newTestService(store).Settle(context.Background(), bronzeInput("key-1"))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if store.wallets[creatorID] != 500 {
		t.Errorf("creator balance = %d, want 500", store.wallets[creatorID])
	}
}

func TestSettleRejectsUnknownRoom(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000
	in := bronzeInput("key-1")
	in.RoomID = 999

	_, _, err := newTestService(store).Settle(context.Background(), in)
	if !errors.Is(err, ErrCreatorUnresolvable) {
		t.Fatalf("err = %v, want ErrCreatorUnresolvable", err)
	}
}

func TestSettleRejectsSelfPayment(t *testing.T) {
	store := newMemStore()
	store.wallets[creatorID] = 5000
	in := bronzeInput("key-1")
	in.FanID = creatorID

	_, _, err := newTestService(store).Settle(context.Background(), in)
	if !errors.Is(err, ErrSelfSettlement) {
		t.Fatalf("err = %v, want ErrSelfSettlement", err)
	}
}

func TestSettleRejectsNonPositiveAmount(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000
	for _, amount := range []int64{0, -100} {
		in := bronzeInput("key-1")
		in.AmountCents = amount
		_, _, err := newTestService(store).Settle(context.Background(), in)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %d: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestStatusFindsSettledRequest(t *testing.T) {
	store := newMemStore()
	store.wallets[fanID] = 5000
	svc := newTestService(store)

	settled, _, err := svc.Settle(context.Background(), bronzeInput("status-key"))
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	got, err := svc.Status("status-key")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if got.ID != settled.ID {
		t.Errorf("status returned request %d, want %d", got.ID, settled.ID)
	}
	if _, err := svc.Status("unknown-key"); err == nil {
		t.Error("status for unknown key should fail")
	}
}
