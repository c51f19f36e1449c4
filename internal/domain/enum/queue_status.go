package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QueueStatus represents the status of a patient queue entry.
type QueueStatus int

const (
	QueueStatusWaiting    QueueStatus = 0
	QueueStatusInProgress QueueStatus = 1
	QueueStatusCompleted  QueueStatus = 2
	QueueStatusCancelled  QueueStatus = 3
)

func (s QueueStatus) String() string {
	return [...]string{"waiting", "in-progress", "completed", "cancelled"}[s]
}

func (s QueueStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QueueStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QueueStatus(i)
		return nil
	}
	switch str {
	case "waiting":
		*s = QueueStatusWaiting
	case "in-progress":
		*s = QueueStatusInProgress
	case "completed":
		*s = QueueStatusCompleted
	case "cancelled":
		*s = QueueStatusCancelled
	}
	return nil
}

func (s QueueStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QueueStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QueueStatusWaiting
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QueueStatus(v)
	case int:
		*s = QueueStatus(v)
	}
	return nil
}
