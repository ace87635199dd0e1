package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of an invoice.
// Completed -> Refunded is the only transition and Refunded is terminal.
type InvoiceStatus int

const (
	InvoiceStatusCompleted InvoiceStatus = 0
	InvoiceStatusRefunded  InvoiceStatus = 1
)

func (s InvoiceStatus) String() string {
	names := [...]string{"Completed", "Refunded"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Completed"
	}
	return names[s]
}

// Sign is the factor an invoice contributes to sales aggregates
func (s InvoiceStatus) Sign() int {
	if s == InvoiceStatusRefunded {
		return -1
	}
	return 1
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Completed":
		*s = InvoiceStatusCompleted
	case "Refunded":
		*s = InvoiceStatusRefunded
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
