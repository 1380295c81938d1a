package collection

import "encoding/json"

// Command is one line of the collection file. Replaying every command in
// order rebuilds the in-memory state.
type Command struct {
	Name      string          `json:"name"`
	Uuid      string          `json:"uuid"`
	Timestamp int64           `json:"timestamp"`
	StartByte int64           `json:"start_byte"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	CommandInsert = "insert"
	CommandRemove = "remove"
	CommandIndex  = "index"
)

type CreateIndexCommand struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Options json.RawMessage `json:"options"`
}

type removeCommand struct {
	I int `json:"i"`
}
