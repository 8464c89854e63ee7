package msgs

import (
	"github.com/golang/protobuf/proto"
)

// Event is a telemetry event which can be serialized over the wire.
type Event interface {
	proto.Message
	TypeID() uint32
}

// KeystrokeEvent reports a received keystroke.
type KeystrokeEvent struct {
	Key           uint32 `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
	NumericQueued bool   `protobuf:"varint,2,opt,name=numeric_queued,proto3" json:"numeric_queued,omitempty"`
	RawQueued     bool   `protobuf:"varint,3,opt,name=raw_queued,proto3" json:"raw_queued,omitempty"`
}

// TypeID implements Event.
func (m *KeystrokeEvent) TypeID() uint32 { return KeystrokeEventTypeID }

// ProtoMessage implements proto.Message.
func (m *KeystrokeEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *KeystrokeEvent) Reset() { *m = KeystrokeEvent{} }

// String implements proto.Message.
func (m *KeystrokeEvent) String() string { return proto.CompactTextString(m) }

// DisplayEvent reports the pattern drawn for a value.
type DisplayEvent struct {
	Value    int32  `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
	Pattern  uint32 `protobuf:"varint,2,opt,name=pattern,proto3" json:"pattern,omitempty"`
	Fallback bool   `protobuf:"varint,3,opt,name=fallback,proto3" json:"fallback,omitempty"`
}

// TypeID implements Event.
func (m *DisplayEvent) TypeID() uint32 { return DisplayEventTypeID }

// ProtoMessage implements proto.Message.
func (m *DisplayEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *DisplayEvent) Reset() { *m = DisplayEvent{} }

// String implements proto.Message.
func (m *DisplayEvent) String() string { return proto.CompactTextString(m) }

// FeedbackEvent reports a feedback message sent back.
type FeedbackEvent struct {
	Key     uint32 `protobuf:"varint,1,opt,name=key,proto3" json:"key,omitempty"`
	Valid   bool   `protobuf:"varint,2,opt,name=valid,proto3" json:"valid,omitempty"`
	Message string `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

// TypeID implements Event.
func (m *FeedbackEvent) TypeID() uint32 { return FeedbackEventTypeID }

// ProtoMessage implements proto.Message.
func (m *FeedbackEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *FeedbackEvent) Reset() { *m = FeedbackEvent{} }

// String implements proto.Message.
func (m *FeedbackEvent) String() string { return proto.CompactTextString(m) }

// QueueStats are the counters of a hand-off queue.
type QueueStats struct {
	Sent     uint64 `protobuf:"varint,1,opt,name=sent,proto3" json:"sent,omitempty"`
	Dropped  uint64 `protobuf:"varint,2,opt,name=dropped,proto3" json:"dropped,omitempty"`
	Received uint64 `protobuf:"varint,3,opt,name=received,proto3" json:"received,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *QueueStats) ProtoMessage() {}

// Reset implements proto.Message.
func (m *QueueStats) Reset() { *m = QueueStats{} }

// String implements proto.Message.
func (m *QueueStats) String() string { return proto.CompactTextString(m) }

// StatsEvent periodically reports the queue counters.
type StatsEvent struct {
	Numeric *QueueStats `protobuf:"bytes,1,opt,name=numeric,proto3" json:"numeric,omitempty"`
	Raw     *QueueStats `protobuf:"bytes,2,opt,name=raw,proto3" json:"raw,omitempty"`
	// Lost counts events dropped by the publisher itself.
	Lost uint64 `protobuf:"varint,3,opt,name=lost,proto3" json:"lost,omitempty"`
}

// TypeID implements Event.
func (m *StatsEvent) TypeID() uint32 { return StatsEventTypeID }

// ProtoMessage implements proto.Message.
func (m *StatsEvent) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatsEvent) Reset() { *m = StatsEvent{} }

// String implements proto.Message.
func (m *StatsEvent) String() string { return proto.CompactTextString(m) }

// TypeIDs
const (
	KeystrokeEventTypeID uint32 = 0x0001
	DisplayEventTypeID   uint32 = 0x0002
	FeedbackEventTypeID  uint32 = 0x0003
	StatsEventTypeID     uint32 = 0x0010
)

// EventTypes maps type IDs to event constructors.
var EventTypes = map[uint32]func() Event{
	KeystrokeEventTypeID: func() Event { return &KeystrokeEvent{} },
	DisplayEventTypeID:   func() Event { return &DisplayEvent{} },
	FeedbackEventTypeID:  func() Event { return &FeedbackEvent{} },
	StatsEventTypeID:     func() Event { return &StatsEvent{} },
}
