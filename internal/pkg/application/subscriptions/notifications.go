package subscriptions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/google/uuid"
)

type Operation string

const (
	OperationPut        Operation = "put"
	OperationRemove     Operation = "remove"
	OperationAddTo      Operation = "add_to"
	OperationSetIn      Operation = "set_in"
	OperationRemoveFrom Operation = "remove_from"
)

type Notification struct {
	ID         string                    `json:"id"`
	Type       string                    `json:"type"`
	Operation  Operation                 `json:"operation"`
	OpID       int64                     `json:"op_id"`
	EventID    string                    `json:"event_id,omitempty"`
	UserURI    string                    `json:"user_uri"`
	NotifiedAt string                    `json:"notifiedAt"`
	Data       []*individuals.Individual `json:"data"`
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	base := struct {
		ID         string          `json:"id"`
		Type       string          `json:"type"`
		Operation  Operation       `json:"operation"`
		OpID       int64           `json:"op_id"`
		EventID    string          `json:"event_id"`
		UserURI    string          `json:"user_uri"`
		NotifiedAt string          `json:"notifiedAt"`
		Data       json.RawMessage `json:"data"`
	}{}

	err := json.Unmarshal(data, &base)
	if err != nil {
		return err
	}

	n.ID = base.ID
	n.Type = base.Type
	n.Operation = base.Operation
	n.OpID = base.OpID
	n.EventID = base.EventID
	n.UserURI = base.UserURI
	n.NotifiedAt = base.NotifiedAt
	n.Data, err = individuals.NewFromSlice(base.Data)

	return err
}

// Change describes a completed modification of one or more individuals
type Change struct {
	Operation Operation
	OpID      int64
	EventID   string
	UserURI   string
	Data      []*individuals.Individual
}

func NewNotification(c Change) *Notification {
	n := &Notification{
		ID:         fmt.Sprintf("urn:veda:Notification:%s", uuid.New().String()),
		Type:       "Notification",
		Operation:  c.Operation,
		OpID:       c.OpID,
		EventID:    c.EventID,
		UserURI:    c.UserURI,
		NotifiedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Data:       c.Data,
	}

	return n
}
