package common

import (
	"regexp"

	"github.com/pkg/errors"
)

const (
	MIN_ACCOUNT_ID_LEN = 2
	MAX_ACCOUNT_ID_LEN = 64
)

var accountIdPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// AccountId is a ledger account name such as "alice.near".
type AccountId string

func (a AccountId) String() string {
	return string(a)
}

func (a AccountId) Validate() error {
	if len(a) < MIN_ACCOUNT_ID_LEN || len(a) > MAX_ACCOUNT_ID_LEN {
		return errors.Wrapf(ErrInvalidArgument, "account id %q must be %d-%d characters",
			string(a), MIN_ACCOUNT_ID_LEN, MAX_ACCOUNT_ID_LEN)
	}
	if !accountIdPattern.MatchString(string(a)) {
		return errors.Wrapf(ErrInvalidArgument, "account id %q has invalid characters", string(a))
	}
	return nil
}

func ParseAccountId(s string) (AccountId, error) {
	id := AccountId(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}
