package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// VisitStatus represents the status of a clinical visit.
type VisitStatus int

const (
	VisitStatusOpen   VisitStatus = 0
	VisitStatusClosed VisitStatus = 1
)

func (s VisitStatus) String() string {
	return [...]string{"open", "closed"}[s]
}

func (s VisitStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *VisitStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = VisitStatus(i)
		return nil
	}
	switch str {
	case "open":
		*s = VisitStatusOpen
	case "closed":
		*s = VisitStatusClosed
	}
	return nil
}

func (s VisitStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *VisitStatus) Scan(value interface{}) error {
	if value == nil {
		*s = VisitStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = VisitStatus(v)
	case int:
		*s = VisitStatus(v)
	}
	return nil
}
