package id

import (
	"encoding/binary"

	"custody/core"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"
)

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// DepositID correlation token of a deposit, unique per sequence
func DepositID(chainID, vault, asset, depositor, recipient string, amount decimal.Decimal, sequence uint64) core.Hash {
	return derive("deposit", chainID, vault, asset, depositor, recipient, amount, sequence)
}

// WithdrawalID correlation token of a withdrawal request.
//
// Keyed by a unix second: identical requests within one second share an id.
func WithdrawalID(chainID, vault, asset, requester, destination string, amount decimal.Decimal, unix int64) core.Hash {
	return derive("withdrawal", chainID, vault, asset, requester, destination, amount, uint64(unix))
}

func derive(domain, chainID, vault, asset, caller, counterparty string, amount decimal.Decimal, counter uint64) core.Hash {
	h := sha3.NewLegacyKeccak256()

	for _, field := range []string{
		domain,
		chainID,
		canonical(vault),
		canonical(asset),
		canonical(caller),
		canonical(counterparty),
		amount.String(),
	} {
		writeField(h, []byte(field))
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)
	writeField(h, buf[:])

	var out core.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// writeField length prefixed so adjacent fields cannot be shifted into each other
func writeField(w interface{ Write([]byte) (int, error) }, b []byte) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))
	_, _ = w.Write(size[:])
	_, _ = w.Write(b)
}

func canonical(id string) string {
	return core.CanonicalIdentity(id)
}
