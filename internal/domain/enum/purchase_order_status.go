package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseOrderStatus represents the status of a pharmacy purchase order.
// Allowed transitions: draft -> submitted -> approved -> received,
// and any non-terminal status -> cancelled.
type PurchaseOrderStatus int

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = 0
	PurchaseOrderStatusSubmitted PurchaseOrderStatus = 1
	PurchaseOrderStatusApproved  PurchaseOrderStatus = 2
	PurchaseOrderStatusReceived  PurchaseOrderStatus = 3
	PurchaseOrderStatusCancelled PurchaseOrderStatus = 4
)

func (s PurchaseOrderStatus) String() string {
	return [...]string{"draft", "submitted", "approved", "received", "cancelled"}[s]
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	switch next {
	case PurchaseOrderStatusSubmitted:
		return s == PurchaseOrderStatusDraft
	case PurchaseOrderStatusApproved:
		return s == PurchaseOrderStatusSubmitted
	case PurchaseOrderStatusReceived:
		return s == PurchaseOrderStatusApproved
	case PurchaseOrderStatusCancelled:
		return s != PurchaseOrderStatusReceived && s != PurchaseOrderStatusCancelled
	default:
		return false
	}
}

func (s PurchaseOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PurchaseOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PurchaseOrderStatus(i)
		return nil
	}
	switch str {
	case "draft":
		*s = PurchaseOrderStatusDraft
	case "submitted":
		*s = PurchaseOrderStatusSubmitted
	case "approved":
		*s = PurchaseOrderStatusApproved
	case "received":
		*s = PurchaseOrderStatusReceived
	case "cancelled":
		*s = PurchaseOrderStatusCancelled
	}
	return nil
}

func (s PurchaseOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PurchaseOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PurchaseOrderStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PurchaseOrderStatus(v)
	case int:
		*s = PurchaseOrderStatus(v)
	}
	return nil
}
