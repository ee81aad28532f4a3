package domain

import (
	"errors"
	"fmt"

	"github.com/cpmech/gomg/patch"
)

// ErrDomainInvariantViolation is the sentinel every
// DomainInvariantViolation wraps; grounded on the lvlath errors.go
// convention of pairing a sentinel with a field-carrying struct.
var ErrDomainInvariantViolation = errors.New("domain: invariant violation")

// DomainInvariantViolation names the offending patch and what failed, as
// required by spec §4.3 ("violations fail with DomainInvariantViolation
// and name the offending patch ids").
type DomainInvariantViolation struct {
	PatchID patch.ID
	Detail  string
}

func (e DomainInvariantViolation) Error() string {
	return fmt.Sprintf("domain: patch %d: %s", e.PatchID, e.Detail)
}

func (e DomainInvariantViolation) Unwrap() error { return ErrDomainInvariantViolation }
