package violation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DetectedWords is a jsonb-backed string slice.
type DetectedWords []string

func (w DetectedWords) Value() (driver.Value, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(w)
}

func (w *DetectedWords) Scan(value interface{}) error {
	if value == nil {
		*w = make(DetectedWords, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, w)
}
