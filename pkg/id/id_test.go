package id

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const (
	chain     = "custody-test"
	vault     = "2f9c3a4e-5d1b-4c7a-9e8f-0a1b2c3d4e5f"
	asset     = "965e5c6e-434c-3fa9-b780-c50f43cd955c"
	depositor = "8d7c6b5a-4e3f-4a1b-8c9d-0e1f2a3b4c5d"
	recipient = "0b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e"
)

func TestDepositIDDeterministic(t *testing.T) {
	amount := decimal.NewFromInt(10)

	a := DepositID(chain, vault, asset, depositor, recipient, amount, 1)
	b := DepositID(chain, vault, asset, depositor, recipient, amount, 1)
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
	assert.Len(t, a.Hex(), 66)
}

func TestDepositIDVariesWithEveryField(t *testing.T) {
	amount := decimal.NewFromInt(10)
	base := DepositID(chain, vault, asset, depositor, recipient, amount, 1)

	cases := map[string]func() [32]byte{
		"chain": func() [32]byte {
			return DepositID("other-chain", vault, asset, depositor, recipient, amount, 1)
		},
		"vault": func() [32]byte {
			return DepositID(chain, recipient, asset, depositor, recipient, amount, 1)
		},
		"asset": func() [32]byte {
			return DepositID(chain, vault, recipient, depositor, recipient, amount, 1)
		},
		"depositor": func() [32]byte {
			return DepositID(chain, vault, asset, recipient, recipient, amount, 1)
		},
		"recipient": func() [32]byte {
			return DepositID(chain, vault, asset, depositor, depositor, amount, 1)
		},
		"amount": func() [32]byte {
			return DepositID(chain, vault, asset, depositor, recipient, decimal.NewFromInt(11), 1)
		},
		"sequence": func() [32]byte {
			return DepositID(chain, vault, asset, depositor, recipient, amount, 2)
		},
	}

	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, [32]byte(base), fn())
		})
	}
}

func TestDepositIDCanonicalAmount(t *testing.T) {
	a := DepositID(chain, vault, asset, depositor, recipient, decimal.RequireFromString("10.0"), 1)
	b := DepositID(chain, vault, asset, depositor, recipient, decimal.NewFromInt(10), 1)
	assert.Equal(t, a, b)
}

func TestWithdrawalIDSameSecondCollides(t *testing.T) {
	amount := decimal.NewFromInt(5)

	a := WithdrawalID(chain, vault, asset, depositor, recipient, amount, 1700000000)
	b := WithdrawalID(chain, vault, asset, depositor, recipient, amount, 1700000000)
	c := WithdrawalID(chain, vault, asset, depositor, recipient, amount, 1700000001)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestWithdrawalAndDepositDomainsDiffer(t *testing.T) {
	amount := decimal.NewFromInt(5)

	d := DepositID(chain, vault, asset, depositor, recipient, amount, 1)
	w := WithdrawalID(chain, vault, asset, depositor, recipient, amount, 1)
	assert.NotEqual(t, d, w)
}

func TestDepositIDIdentityForms(t *testing.T) {
	amount := decimal.NewFromInt(10)

	a := DepositID(chain, vault, asset, depositor, recipient, amount, 1)
	b := DepositID(chain, "{"+strings.ToUpper(vault)+"}", "urn:uuid:"+asset, strings.ToUpper(depositor), recipient, amount, 1)
	assert.Equal(t, a, b)
}
