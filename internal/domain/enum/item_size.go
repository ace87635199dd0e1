package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ItemSize is the variant tag of a sized product
type ItemSize string

const (
	ItemSizeNone   ItemSize = "none"
	ItemSizeSmall  ItemSize = "small"
	ItemSizeMedium ItemSize = "medium"
	ItemSizeLarge  ItemSize = "large"
	ItemSizeFamily ItemSize = "family"
)

func (s ItemSize) String() string {
	return string(s)
}

// Normalize maps unknown or empty tags to ItemSizeNone
func (s ItemSize) Normalize() ItemSize {
	switch s {
	case ItemSizeSmall, ItemSizeMedium, ItemSizeLarge, ItemSizeFamily:
		return s
	default:
		return ItemSizeNone
	}
}

func (s ItemSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s.Normalize()))
}

func (s *ItemSize) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ItemSize(str).Normalize()
	return nil
}

func (s ItemSize) Value() (driver.Value, error) {
	return string(s.Normalize()), nil
}

func (s *ItemSize) Scan(value interface{}) error {
	if value == nil {
		*s = ItemSizeNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = ItemSize(v).Normalize()
	case []byte:
		*s = ItemSize(string(v)).Normalize()
	}
	return nil
}
