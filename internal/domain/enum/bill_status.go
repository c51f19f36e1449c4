package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillStatus represents the status of a patient bill.
//
// "active" is a legacy status carried by bills created before partial
// payments were introduced; it is treated the same as "pending" when
// resolving a patient's active bill.
type BillStatus int

const (
	BillStatusPending BillStatus = 0
	BillStatusPartial BillStatus = 1
	BillStatusPaid    BillStatus = 2
	BillStatusActive  BillStatus = 3
)

func (s BillStatus) String() string {
	return [...]string{"pending", "partial", "paid", "active"}[s]
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = BillStatusPending
	case "partial":
		*s = BillStatusPartial
	case "paid":
		*s = BillStatusPaid
	case "active":
		*s = BillStatusActive
	}
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillStatus(v)
	case int:
		*s = BillStatus(v)
	}
	return nil
}
