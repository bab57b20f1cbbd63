package amqp

import (
	"encoding/json"
	"time"
)

// RecordCreatedMessage announces a row appended to the local mirror. It is
// deliberately small: the worker re-reads the pending rows from storage, so
// a lost or duplicated message costs nothing.
type RecordCreatedMessage struct {
	RangeID   string    `json:"rangeId"`
	RecordID  string    `json:"recordId"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordCreatedMessage(rangeID, recordID string) *RecordCreatedMessage {
	return &RecordCreatedMessage{
		RangeID:   rangeID,
		RecordID:  recordID,
		Timestamp: time.Now(),
	}
}

func (m *RecordCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordCreatedMessageFromJSON(data []byte) (*RecordCreatedMessage, error) {
	var msg RecordCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
