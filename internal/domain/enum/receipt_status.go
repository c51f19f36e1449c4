package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptStatus represents the status of a payment receipt.
// A receipt's amount is immutable; only the status (and notes) may change.
type ReceiptStatus int

const (
	ReceiptStatusActive   ReceiptStatus = 0
	ReceiptStatusVoided   ReceiptStatus = 1
	ReceiptStatusRefunded ReceiptStatus = 2
)

func (s ReceiptStatus) String() string {
	return [...]string{"active", "voided", "refunded"}[s]
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptStatus(i)
		return nil
	}
	switch str {
	case "active":
		*s = ReceiptStatusActive
	case "voided":
		*s = ReceiptStatusVoided
	case "refunded":
		*s = ReceiptStatusRefunded
	}
	return nil
}

func (s ReceiptStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceiptStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceiptStatus(v)
	case int:
		*s = ReceiptStatus(v)
	}
	return nil
}
