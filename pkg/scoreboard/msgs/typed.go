package msgs

import (
	"fmt"
	"time"

	"github.com/golang/protobuf/proto"
)

// Typed wraps an encoded event with type information.
type Typed struct {
	TypeId    uint32 `protobuf:"varint,1,opt,name=type_id,proto3" json:"type_id,omitempty"`
	Session   string `protobuf:"bytes,2,opt,name=session,proto3" json:"session,omitempty"`
	Sequence  uint64 `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Timestamp int64  `protobuf:"varint,4,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Message   []byte `protobuf:"bytes,5,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Typed) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Typed) Reset() { *m = Typed{} }

// String implements proto.Message.
func (m *Typed) String() string { return proto.CompactTextString(m) }

// ErrUnknownType indicates unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

// TypedFrom encodes an event into a Typed.
func TypedFrom(ev Event) (*Typed, error) {
	data, err := proto.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return &Typed{TypeId: ev.TypeID(), Message: data}, nil
}

// Time returns Timestamp as time.Time.
func (m *Typed) Time() time.Time {
	return time.Unix(0, m.Timestamp)
}

// Decode decodes the actual event.
func (m *Typed) Decode() (Event, error) {
	newEvent, ok := EventTypes[m.TypeId]
	if !ok {
		return nil, &ErrUnknownType{TypeID: m.TypeId}
	}
	ev := newEvent()
	if err := proto.Unmarshal(m.Message, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Encode encodes the Typed to bytes.
func (m *Typed) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeTyped decodes bytes into Typed.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}
