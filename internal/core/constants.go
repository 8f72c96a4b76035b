package core

import (
	"os"
	"time"
)

// PermOwnerRW is the permission used for files written by storever
// (owner read/write only).
const PermOwnerRW os.FileMode = 0o600

const (
	// TimeoutShort bounds quick local checks.
	TimeoutShort = 5 * time.Second

	// TimeoutFetch is the default transport timeout used by the CLI.
	// Library callers get no timeout unless they set one.
	TimeoutFetch = 30 * time.Second
)
