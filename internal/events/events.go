package events

import (
	"encoding/json"
	"time"
)

const (
	TypeDatasetLoaded = "dataset_loaded"
	TypeCollectFailed = "collect_failed"
	TypeHello         = "hello"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// DatasetLoaded is published after a new dataset snapshot replaces the old one.
type DatasetLoaded struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
	Warning string `json:"warning,omitempty"`
}

type CollectFailed struct {
	Error string `json:"error"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
