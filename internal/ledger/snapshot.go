package ledger

// Snapshot is an immutable view of the books: every account, item, and
// transaction, loaded once per report request. The engine only ever reads
// it, so statement lines can be computed independently without locking.
type Snapshot struct {
	Accounts     []Account
	Items        []Item
	Transactions []Transaction
}

// AccountsOf returns the accounts of one class, preserving load order.
func (s *Snapshot) AccountsOf(class AccountClass) []Account {
	var out []Account
	for _, a := range s.Accounts {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

// FindAccount looks up an account by id.
func (s *Snapshot) FindAccount(id string) (Account, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}
