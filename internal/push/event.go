package push

import (
	"context"
	"encoding/json"
)

const (
	EventOfficerChat        = "officer-chat"
	EventOfficerChatDeleted = "officer-chat-deleted"
)

// Event is the frame written to websocket clients and relayed over Redis.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

func NewEvent(name string, data interface{}) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{Name: name, Data: raw}, nil
}

func (e *Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}
