package ledger

// SeedWallet is a test helper that registers a wallet with the in-memory
// store so seeded entries resolve their account and currency.
func SeedWallet(s Store, walletID, accountID int64, currency string) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.registerWallet(walletID, accountID, currency)
	}
}

// SeedEntry is a test helper that appends an entry to the in-memory store
// and returns it with its assigned identifier.
func SeedEntry(s Store, e Entry) Entry {
	if mem, ok := s.(*inMemoryStore); ok {
		return mem.append(e)
	}
	return e
}
