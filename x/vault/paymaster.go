package vault

import (
	"sync"

	remittance "github.com/iov-one/remittance"
	"github.com/iov-one/remittance/coin"
)

// Paymaster performs the actual value transfer of a withdrawal. The ledger
// only tracks entitlements; moving real money is an external concern behind
// this interface. When Pay returns an error the whole withdrawal transaction
// is discarded, so the balance debit never outlives a failed transfer.
type Paymaster interface {
	Pay(ctx remittance.Context, recipient remittance.Address, amount coin.Coin) error
}

// Payout is a single completed transfer.
type Payout struct {
	Recipient remittance.Address
	Amount    coin.Coin
}

// RecordingPaymaster is the in-process Paymaster. It never fails and keeps
// every payout in memory, which is what a single node without a settlement
// backend needs. Production deployments swap it for a real adapter.
type RecordingPaymaster struct {
	mu      sync.Mutex
	payouts []Payout
}

var _ Paymaster = (*RecordingPaymaster)(nil)

func NewRecordingPaymaster() *RecordingPaymaster {
	return &RecordingPaymaster{}
}

func (p *RecordingPaymaster) Pay(ctx remittance.Context, recipient remittance.Address, amount coin.Coin) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payouts = append(p.payouts, Payout{Recipient: recipient, Amount: amount})
	return nil
}

// Payouts returns a copy of all recorded transfers.
func (p *RecordingPaymaster) Payouts() []Payout {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]Payout, len(p.payouts))
	copy(res, p.payouts)
	return res
}
