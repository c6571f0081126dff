package domain

// TxType discriminates ledger transaction records.
type TxType string

const (
	TxDeposit  TxType = "deposit"
	TxTransfer TxType = "transfer"
)

// Transaction is one immutable ledger record. From and To are populated only
// for transfers.
type Transaction struct {
	Type   TxType
	Amount int64
	From   string
	To     string
}

// AccountState seeds a restored account with its persisted balance and
// cumulative transaction counters.
type AccountState struct {
	Balance   *Amount
	Deposits  int64
	Transfers int64
}

// Account is the ledger aggregate. It holds the current balance and an
// append-only log of the transactions recorded since the aggregate was
// loaded; persisted history only contributes counters.
type Account struct {
	ID string

	balance       *Amount
	transactions  []Transaction
	histDeposits  int64
	histTransfers int64
}

// NewAccount creates a fresh account with a zero balance and an empty log.
func NewAccount(id string) (*Account, error) {
	if id == "" {
		return nil, NewError(KindAccountInvalid, "account ID must be defined")
	}

	return &Account{ID: id, balance: NewAmount()}, nil
}

// RestoreAccount rebuilds an account from a persisted snapshot. The live
// transaction log starts empty; only new operations append to it.
func RestoreAccount(id string, state *AccountState) (*Account, error) {
	if id == "" {
		return nil, NewError(KindAccountInvalid, "account ID must be defined")
	}

	if state == nil || state.Balance == nil {
		return nil, NewError(KindAccountInvalid, "account state must be defined")
	}

	return &Account{
		ID:            id,
		balance:       state.Balance,
		histDeposits:  state.Deposits,
		histTransfers: state.Transfers,
	}, nil
}

// Deposit adds amount to the balance and records a deposit transaction.
func (a *Account) Deposit(amount int64) error {
	if err := a.balance.Add(amount); err != nil {
		return err
	}

	a.transactions = append(a.transactions, Transaction{Type: TxDeposit, Amount: amount})

	return nil
}

// Transfer moves amount from this account to destination. Both aggregates
// are mutated within this single call; persisting the two sides is the
// caller's job and is not atomic across accounts.
//
// Validation order matters: destination first, then funds, then the amount
// itself (inside Subtract).
func (a *Account) Transfer(amount int64, destination *Account) error {
	if destination == nil || destination.ID == a.ID {
		return NewError(KindTransferInvalidDestination, "invalid target account")
	}

	if a.balance.Value() < amount {
		return NewError(KindTransferInsufficientFunds, "insufficient funds")
	}

	if err := a.balance.Subtract(amount); err != nil {
		return err
	}

	record := Transaction{Type: TxTransfer, Amount: amount, From: a.ID, To: destination.ID}
	a.transactions = append(a.transactions, record)

	destination.receiveTransfer(record)

	return nil
}

// receiveTransfer applies the credit side of a transfer. The amount was
// already validated by the origin's Subtract, so Add cannot fail here.
func (a *Account) receiveTransfer(record Transaction) {
	_ = a.balance.Add(record.Amount)
	a.transactions = append(a.transactions, record)
}

// Balance returns the current balance in cents.
func (a *Account) Balance() int64 {
	return a.balance.Value()
}

// FormattedBalance returns the balance as a two-decimal string.
func (a *Account) FormattedBalance() string {
	return a.balance.Formatted()
}

// Transactions returns the records appended since the aggregate was loaded,
// in append order.
func (a *Account) Transactions() []Transaction {
	return a.transactions
}

// DepositCount returns the historical deposit counter plus the deposits in
// the live log.
func (a *Account) DepositCount() int64 {
	n := a.histDeposits
	for _, t := range a.transactions {
		if t.Type == TxDeposit {
			n++
		}
	}

	return n
}

// TransferCount returns the historical transfer counter plus the transfers
// in the live log.
func (a *Account) TransferCount() int64 {
	n := a.histTransfers
	for _, t := range a.transactions {
		if t.Type == TxTransfer {
			n++
		}
	}

	return n
}
