package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodJSON(t *testing.T) {
	data, err := json.Marshal(PaymentMethodTransfer)
	require.NoError(t, err)
	assert.JSONEq(t, `"Transfer"`, string(data))

	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"Card"`), &m))
	assert.Equal(t, PaymentMethodCard, m)

	require.NoError(t, json.Unmarshal([]byte(`0`), &m))
	assert.Equal(t, PaymentMethodCash, m)

	assert.Error(t, json.Unmarshal([]byte(`"Cheque"`), &m))
	assert.Error(t, json.Unmarshal([]byte(`7`), &m))
}

func TestOrderTypeParse(t *testing.T) {
	ot, err := ParseOrderType("DineIn")
	require.NoError(t, err)
	assert.Equal(t, OrderTypeDineIn, ot)

	_, err = ParseOrderType("Delivery")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", OrderType(9).String())
}

func TestInvoiceStatusSign(t *testing.T) {
	assert.Equal(t, 1, InvoiceStatusCompleted.Sign())
	assert.Equal(t, -1, InvoiceStatusRefunded.Sign())
}

func TestItemSizeNormalize(t *testing.T) {
	assert.Equal(t, ItemSizeLarge, ItemSize("large").Normalize())
	assert.Equal(t, ItemSizeNone, ItemSize("").Normalize())
	assert.Equal(t, ItemSizeNone, ItemSize("xxl").Normalize())

	var s ItemSize
	require.NoError(t, json.Unmarshal([]byte(`"medium"`), &s))
	assert.Equal(t, ItemSizeMedium, s)
}

func TestDiscountKindJSON(t *testing.T) {
	var k DiscountKind
	require.NoError(t, json.Unmarshal([]byte(`"fixed"`), &k))
	assert.Equal(t, DiscountKindFixed, k)
	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &k))

	require.NoError(t, json.Unmarshal([]byte(`0`), &k))
	assert.Equal(t, DiscountKindPercentage, k)
	assert.Error(t, json.Unmarshal([]byte(`7`), &k))
	assert.Error(t, json.Unmarshal([]byte(`-1`), &k))
	assert.Equal(t, DiscountKindPercentage, k, "rejected input leaves the kind unchanged")

	assert.False(t, DiscountKind(7).Valid())
	assert.Equal(t, "Unknown", DiscountKind(7).String())
}
