package transport

import (
	"github.com/goliatone/go-ledger/core"
)

var _ LedgerService = (*core.Service)(nil)
