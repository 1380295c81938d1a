package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClosed      = errors.New("collection is closed")
	ErrRowNotFound = errors.New("row not found")
)

type Collection struct {
	Filename string
	file     *os.File
	Rows     []*Row
	mutex    *sync.RWMutex
	Indexes  map[string]Index
	seq      int64
}

type Row struct {
	I       int   // position in Rows
	Seq     int64 // insertion order, stable across removals
	Payload json.RawMessage
}

func OpenCollection(filename string) (*Collection, error) {

	f, err := os.OpenFile(filename, os.O_RDONLY|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for read: %w", err)
	}
	defer f.Close()

	c := &Collection{
		Filename: filename,
		Rows:     []*Row{},
		mutex:    &sync.RWMutex{},
		Indexes:  map[string]Index{},
	}

	err = c.replay(f)
	if err != nil {
		return nil, err
	}

	// Open file for append only
	c.file, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	return c, nil
}

func (c *Collection) replay(r io.Reader) error {

	j := json.NewDecoder(r)
	for n := 1; ; n++ {
		command := &Command{}
		err := j.Decode(command)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode command %d: %w", n, err)
		}

		switch command.Name {
		case CommandInsert:
			_, err = c.addRow(command.Payload)
		case CommandRemove:
			params := &removeCommand{}
			err = json.Unmarshal(command.Payload, params)
			if err == nil {
				err = c.removeAt(params.I)
			}
		case CommandIndex:
			params := &CreateIndexCommand{}
			err = json.Unmarshal(command.Payload, params)
			if err != nil {
				break
			}
			var options interface{}
			options, err = decodeIndexOptions(params.Type, params.Options)
			if err == nil {
				err = c.createIndex(params.Name, options)
			}
		default:
			err = fmt.Errorf("unknown command '%s'", command.Name)
		}
		if err != nil {
			return fmt.Errorf("replay command %d (%s): %w", n, command.Name, err)
		}
	}
}

// persist must be called with the write lock held so the file keeps the
// same order as the in-memory mutations.
func (c *Collection) persist(name string, payload json.RawMessage) error {

	if c.file == nil {
		return ErrClosed
	}

	command := &Command{
		Name:      name,
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UnixNano(),
		StartByte: 0,
		Payload:   payload,
	}

	err := json.NewEncoder(c.file).Encode(command)
	if err != nil {
		return fmt.Errorf("json encode command: %w", err)
	}

	return nil
}

func (c *Collection) addRow(payload json.RawMessage) (*Row, error) {

	c.seq++
	row := &Row{
		I:       len(c.Rows),
		Seq:     c.seq,
		Payload: payload,
	}

	err := indexInsert(c.Indexes, row)
	if err != nil {
		return nil, err
	}

	c.Rows = append(c.Rows, row)

	return row, nil
}

func (c *Collection) Insert(item interface{}) (*Row, error) {

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return nil, ErrClosed
	}

	row, err := c.addRow(payload)
	if err != nil {
		return nil, err
	}

	err = c.persist(CommandInsert, payload)
	if err != nil {
		return nil, err
	}

	return row, nil
}

func (c *Collection) Remove(row *Row) error {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return ErrClosed
	}

	i := row.I
	if i >= len(c.Rows) || c.Rows[i] != row {
		return ErrRowNotFound
	}

	err := c.removeAt(i)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(&removeCommand{I: i})
	if err != nil {
		return fmt.Errorf("json encode payload: %w", err)
	}

	return c.persist(CommandRemove, payload)
}

// removeAt moves the last row into the freed position.
func (c *Collection) removeAt(i int) error {

	if i < 0 || i >= len(c.Rows) {
		return fmt.Errorf("row %d does not exist", i)
	}
	row := c.Rows[i]

	err := indexRemove(c.Indexes, row)
	if err != nil {
		return fmt.Errorf("could not free index: %w", err)
	}

	last := len(c.Rows) - 1
	c.Rows[i] = c.Rows[last]
	c.Rows[i].I = i
	c.Rows[last] = nil
	c.Rows = c.Rows[:last]

	return nil
}

func (c *Collection) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.Rows)
}

// Traverse visits rows in storage order until f returns false.
func (c *Collection) Traverse(f func(row *Row) bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, row := range c.Rows {
		if !f(row) {
			return
		}
	}
}

// TraverseIndex visits rows in the order of the named index.
func (c *Collection) TraverseIndex(name string, options []byte, f func(row *Row) bool) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, exists := c.Indexes[name]
	if !exists {
		return fmt.Errorf("index '%s' does not exist", name)
	}

	index.Traverse(options, f)
	return nil
}

// Index creates an index from *IndexMapOptions or *IndexBTreeOptions and
// fills it with the current rows.
func (c *Collection) Index(name string, options interface{}) error {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return ErrClosed
	}

	err := c.createIndex(name, options)
	if err != nil {
		return err
	}

	index := c.Indexes[name]
	optionsPayload, err := json.Marshal(index.GetOptions())
	if err != nil {
		return fmt.Errorf("json encode options: %w", err)
	}
	payload, err := json.Marshal(&CreateIndexCommand{
		Name:    name,
		Type:    index.GetType(),
		Options: optionsPayload,
	})
	if err != nil {
		return fmt.Errorf("json encode payload: %w", err)
	}

	return c.persist(CommandIndex, payload)
}

func (c *Collection) createIndex(name string, options interface{}) error {

	if _, exists := c.Indexes[name]; exists {
		return fmt.Errorf("index '%s' already exists", name)
	}

	index, err := newIndex(options)
	if err != nil {
		return err
	}

	for _, row := range c.Rows {
		err := index.AddRow(row)
		if err != nil {
			return fmt.Errorf("index row: %w, data: %s", err, string(row.Payload))
		}
	}
	c.Indexes[name] = index

	return nil
}

// FindByRow looks a value up in a map index.
func (c *Collection) FindByRow(name string, value string) (*Row, error) {

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, ok := c.Indexes[name].(*IndexMap)
	if !ok {
		return nil, fmt.Errorf("'%s' is not a map index", name)
	}

	row, ok := index.Get(value)
	if !ok {
		return nil, fmt.Errorf("%s '%s': %w", index.Options.Field, value, ErrRowNotFound)
	}

	return row, nil
}

func (c *Collection) FindBy(name string, value string, data interface{}) error {

	row, err := c.FindByRow(name, value)
	if err != nil {
		return err
	}

	return json.Unmarshal(row.Payload, data)
}

func indexInsert(indexes map[string]Index, row *Row) error {

	done := make([]Index, 0, len(indexes))
	for name, index := range indexes {
		err := index.AddRow(row)
		if err != nil {
			for _, d := range done {
				d.RemoveRow(row)
			}
			return fmt.Errorf("index '%s': %w", name, err)
		}
		done = append(done, index)
	}

	return nil
}

func indexRemove(indexes map[string]Index, row *Row) error {
	for name, index := range indexes {
		err := index.RemoveRow(row)
		if err != nil {
			return fmt.Errorf("index '%s': %w", name, err)
		}
	}
	return nil
}

func (c *Collection) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

func (c *Collection) Drop() error {
	err := c.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	err = os.Remove(c.Filename)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	return nil
}
