package escrow

import "github.com/campuspay/ledger/errors"

// x/escrow reserves 1010 ~ 1019.
var (
	ErrAlreadyActive = errors.Register(1010, "escrow already active")
	ErrSelfDealing   = errors.Register(1011, "receiver is the payer")
	ErrNotActive     = errors.Register(1012, "escrow not active")
)
