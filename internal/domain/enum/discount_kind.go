package enum

import (
	"encoding/json"
	"fmt"
)

// DiscountKind represents how a cart discount amount is interpreted
type DiscountKind int

const (
	// DiscountKindPercentage reads the amount as 0-100 percent of the tax-inclusive total
	DiscountKindPercentage DiscountKind = 0
	// DiscountKindFixed reads the amount as a currency value
	DiscountKindFixed DiscountKind = 1
)

var discountKindNames = [...]string{"Percentage", "Fixed"}

func (k DiscountKind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return discountKindNames[k]
}

// Valid reports whether k is a known discount kind
func (k DiscountKind) Valid() bool {
	return k >= DiscountKindPercentage && int(k) < len(discountKindNames)
}

func (k DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !DiscountKind(i).Valid() {
			return fmt.Errorf("unknown discount kind %d", i)
		}
		*k = DiscountKind(i)
		return nil
	}
	switch str {
	case "Percentage", "percentage":
		*k = DiscountKindPercentage
	case "Fixed", "fixed":
		*k = DiscountKindFixed
	default:
		return fmt.Errorf("unknown discount kind %q", str)
	}
	return nil
}
