package app

import (
	"context"
	"sync"
	"time"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
	"github.com/iov-one/remittance/errors"
	"github.com/iov-one/remittance/store"
	"github.com/iov-one/remittance/x/remit"
	"github.com/iov-one/remittance/x/vault"
)

// Ledger is the assembled application: one store, one router, serial
// transaction execution.
type Ledger struct {
	mu      sync.Mutex
	chainID string
	db      store.CacheableKVStore
	router  *Router
	queries *QueryRouter
	vault   vault.Controller
	log     *EventLog
}

// NewLedger wires all extensions over the given store and initializes state
// from the genesis options. The paymaster performs withdrawals; pass
// vault.NewRecordingPaymaster() when no settlement backend is attached.
func NewLedger(chainID string, db store.CacheableKVStore, pay vault.Paymaster, opts remittance.Options) (*Ledger, error) {
	if !remittance.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid chain id: %q", chainID)
	}

	router := NewRouter()
	queries := NewQueryRouter()
	auth := ctxAuth{}
	ctrl := vault.NewController(vault.NewBucket())

	remit.RegisterRoutes(router, auth, ctrl)
	vault.RegisterRoutes(router, auth, ctrl, pay, remit.LoadOwner)
	remit.RegisterQuery(queries)
	vault.RegisterQuery(queries)

	l := &Ledger{
		chainID: chainID,
		db:      db,
		router:  router,
		queries: queries,
		vault:   ctrl,
		log:     NewEventLog(),
	}

	initializers := []remittance.Initializer{
		remit.Initializer{},
	}
	cache := l.db.CacheWrap()
	for _, ini := range initializers {
		if err := ini.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return nil, errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit genesis")
	}
	return l, nil
}

// ChainID returns the instance identity the ledger was created with.
func (l *Ledger) ChainID() string {
	return l.chainID
}

// LedgerAddress returns the address commitments of this instance are bound
// to.
func (l *Ledger) LedgerAddress() remittance.Address {
	return remit.LedgerAddress(l.chainID)
}

// CheckTx validates the message without changing any state.
func (l *Ledger) CheckTx(now time.Time, conditions []remittance.Condition, msg remittance.Msg) (res *remittance.CheckResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer errors.Recover(&err)

	ctx := l.context(now, conditions)
	cache := l.db.CacheWrap()
	defer cache.Discard()
	return l.router.Check(ctx, cache, &ledgerTx{msg: msg})
}

// DeliverTx executes a single message. All writes of one message are applied
// together or not at all: the handler works on a cache-wrap that is only
// written through on success. Events of successful transactions are appended
// to the event log.
func (l *Ledger) DeliverTx(now time.Time, conditions []remittance.Condition, msg remittance.Msg) (res *remittance.DeliverResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer errors.Recover(&err)

	ctx := l.context(now, conditions)
	cache := l.db.CacheWrap()
	res, err = l.router.Deliver(ctx, cache, &ledgerTx{msg: msg})
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot commit")
	}
	l.log.Append(now, res.Events)
	return res, nil
}

func (l *Ledger) context(now time.Time, conditions []remittance.Condition) remittance.Context {
	ctx := remittance.WithChainID(context.Background(), l.chainID)
	ctx = remittance.WithBlockTime(ctx, now)
	return withConditions(ctx, conditions)
}

// Query answers a read-only request, eg. path "/balances" with an address as
// data.
func (l *Ledger) Query(path, mod string, data []byte) ([]remittance.Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queries.Query(l.db, path, mod, data)
}

// Balance is a convenience lookup of a vault balance. A missing balance
// reports nil.
func (l *Ledger) Balance(owner remittance.Address) (*coin.Coin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vault.Balance(l.db, owner)
}

// Remittance is a convenience lookup of a record by commitment.
func (l *Ledger) Remittance(commitment []byte) (*remit.Remittance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var rem remit.Remittance
	if err := remit.NewBucket().One(l.db, commitment, &rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

// Configuration returns the ledger fee policy and owner.
func (l *Ledger) Configuration() (*remit.Configuration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return remit.LoadConf(l.db)
}

// Events returns a copy of the append-only event log.
func (l *Ledger) Events() []LogEntry {
	return l.log.Entries()
}

// ledgerTx adapts a single message to the Tx interface.
type ledgerTx struct {
	msg remittance.Msg
}

var _ remittance.Tx = (*ledgerTx)(nil)

func (tx *ledgerTx) GetMsg() (remittance.Msg, error) {
	return tx.msg, nil
}
