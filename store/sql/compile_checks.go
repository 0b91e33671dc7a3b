package sqlstore

import "github.com/goliatone/go-ledger/core"

var (
	_ core.AccountStore           = (*AccountStore)(nil)
	_ core.EntryStore             = (*EntryStore)(nil)
	_ core.IdempotencyStore       = (*IdempotencyStore)(nil)
	_ core.TransferStore          = (*TransferStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
