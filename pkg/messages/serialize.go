package messages

import (
	"encoding/json"
	"fmt"
)

// SerializeMessage serializes a message to its {type, payload} wire shape.
// The wire shape is the compatibility contract the embedded surface parses,
// so it is plain JSON with no framing or compression on top.
func SerializeMessage(m *Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}
	return b, nil
}

// DeserializeMessage deserializes a message from its wire shape.
func DeserializeMessage(data []byte) (*Message, error) {
	message := &Message{}
	if err := json.Unmarshal(data, message); err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}
	if message.Type == "" {
		return nil, fmt.Errorf("message has no type")
	}
	return message, nil
}
