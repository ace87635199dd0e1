package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderType represents how an order is served
type OrderType int

const (
	OrderTypeTakeaway OrderType = 0
	OrderTypeDineIn   OrderType = 1
)

var orderTypeNames = [...]string{"Takeaway", "DineIn"}

// OrderTypes lists every order type in display order
func OrderTypes() []OrderType {
	return []OrderType{OrderTypeTakeaway, OrderTypeDineIn}
}

func (t OrderType) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return orderTypeNames[t]
}

// Valid reports whether t is a known order type
func (t OrderType) Valid() bool {
	return t >= OrderTypeTakeaway && int(t) < len(orderTypeNames)
}

// ParseOrderType parses the display name of an order type
func ParseOrderType(s string) (OrderType, error) {
	for i, name := range orderTypeNames {
		if name == s {
			return OrderType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !OrderType(i).Valid() {
			return fmt.Errorf("unknown order type %d", i)
		}
		*t = OrderType(i)
		return nil
	}
	parsed, err := ParseOrderType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeTakeaway
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
