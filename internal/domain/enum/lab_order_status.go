package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LabOrderStatus represents the status of a laboratory order.
type LabOrderStatus int

const (
	LabOrderStatusOrdered    LabOrderStatus = 0
	LabOrderStatusInProgress LabOrderStatus = 1
	LabOrderStatusCompleted  LabOrderStatus = 2
	LabOrderStatusCancelled  LabOrderStatus = 3
)

func (s LabOrderStatus) String() string {
	return [...]string{"ordered", "in-progress", "completed", "cancelled"}[s]
}

func (s LabOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *LabOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = LabOrderStatus(i)
		return nil
	}
	switch str {
	case "ordered":
		*s = LabOrderStatusOrdered
	case "in-progress":
		*s = LabOrderStatusInProgress
	case "completed":
		*s = LabOrderStatusCompleted
	case "cancelled":
		*s = LabOrderStatusCancelled
	}
	return nil
}

func (s LabOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *LabOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = LabOrderStatusOrdered
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = LabOrderStatus(v)
	case int:
		*s = LabOrderStatus(v)
	}
	return nil
}
