package principal

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash/crc32"
)

// SubaccountLength is the byte length of a subaccount.
const SubaccountLength = 32

// ErrInvalidAccountIdentifier is returned for malformed account identifiers.
var ErrInvalidAccountIdentifier = errors.New("principal: invalid account identifier")

// Subaccount selects one of the accounts owned by a principal.
type Subaccount [SubaccountLength]byte

// DefaultSubaccount is the all-zero subaccount.
var DefaultSubaccount Subaccount

// SubaccountFromPrincipal encodes a principal into a subaccount: length byte
// followed by the raw principal, zero padded. Used for top-up deposits.
func SubaccountFromPrincipal(p Principal) Subaccount {
	var s Subaccount
	raw := p.Bytes()
	s[0] = byte(len(raw))
	copy(s[1:], raw)
	return s
}

// AccountIdentifier addresses a ledger account: CRC32 || SHA-224 hash.
type AccountIdentifier [32]byte

var accountDomainSeparator = []byte("\x0Aaccount-id")

// NewAccountIdentifier derives the account identifier of (owner, subaccount).
func NewAccountIdentifier(owner Principal, sub Subaccount) AccountIdentifier {
	h := sha256.New224()
	h.Write(accountDomainSeparator)
	h.Write(owner.Bytes())
	h.Write(sub[:])
	sum := h.Sum(nil)

	var id AccountIdentifier
	binary.BigEndian.PutUint32(id[:4], crc32.ChecksumIEEE(sum))
	copy(id[4:], sum)
	return id
}

// DefaultAccount returns the account identifier of p's default subaccount.
func DefaultAccount(p Principal) AccountIdentifier {
	return NewAccountIdentifier(p, DefaultSubaccount)
}

// ParseAccountIdentifier decodes the 64 character hex form and verifies the checksum.
func ParseAccountIdentifier(s string) (AccountIdentifier, error) {
	var id AccountIdentifier
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(id) {
		return id, ErrInvalidAccountIdentifier
	}
	copy(id[:], raw)
	if binary.BigEndian.Uint32(id[:4]) != crc32.ChecksumIEEE(id[4:]) {
		return id, ErrInvalidAccountIdentifier
	}
	return id, nil
}

// String returns the hex form.
func (a AccountIdentifier) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText encodes the hex form.
func (a AccountIdentifier) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes the hex form.
func (a *AccountIdentifier) UnmarshalText(text []byte) error {
	id, err := ParseAccountIdentifier(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// Account is an ICRC-1 account: an owner plus optional subaccount.
type Account struct {
	Owner      Principal   `json:"owner"`
	Subaccount *Subaccount `json:"subaccount,omitempty"`
}

// AccountOf returns the default account of p.
func AccountOf(p Principal) Account {
	return Account{Owner: p}
}

// Identifier returns the legacy ledger account identifier of the account.
func (a Account) Identifier() AccountIdentifier {
	if a.Subaccount == nil {
		return DefaultAccount(a.Owner)
	}
	return NewAccountIdentifier(a.Owner, *a.Subaccount)
}
