package amqp

import (
	"testing"
	"time"
)

func TestRecordCreatedMessageRoundTrip(t *testing.T) {
	msg := NewRecordCreatedMessage("Clients!A:E", "c1")
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordCreatedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RangeID != "Clients!A:E" || got.RecordID != "c1" {
		t.Fatalf("unexpected message: %+v", got)
	}
	if !got.Timestamp.Round(time.Second).Equal(msg.Timestamp.Round(time.Second)) {
		t.Fatalf("timestamp drift: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestRecordCreatedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RecordCreatedMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
