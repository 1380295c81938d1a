package collection

import (
	"encoding/json"
	"fmt"
	"sync"
)

// IndexMap is a unique index over one field. String values index the row
// once, arrays of strings index it under every element.
type IndexMap struct {
	Entries map[string]*Row
	RWmutex *sync.RWMutex
	Options *IndexMapOptions
}

type IndexMapOptions struct {
	Field  string `json:"field"`
	Sparse bool   `json:"sparse"`
}

func NewIndexMap(options *IndexMapOptions) *IndexMap {
	return &IndexMap{
		Entries: map[string]*Row{},
		RWmutex: &sync.RWMutex{},
		Options: options,
	}
}

func (i *IndexMap) GetType() string {
	return IndexTypeMap
}

func (i *IndexMap) GetOptions() interface{} {
	return i.Options
}

func (i *IndexMap) keys(row *Row) ([]string, bool, error) {

	item, err := decodeRow(row)
	if err != nil {
		return nil, false, err
	}

	field := i.Options.Field
	value, exists := item[field]
	if !exists {
		return nil, false, nil
	}

	switch value := value.(type) {
	case string:
		return []string{value}, true, nil
	case []interface{}:
		keys := make([]string, 0, len(value))
		for _, v := range value {
			s, ok := v.(string)
			if !ok {
				return nil, true, fmt.Errorf("field '%s' has a non string element %v", field, v)
			}
			keys = append(keys, s)
		}
		return keys, true, nil
	default:
		return nil, true, fmt.Errorf("field '%s': type %T not supported", field, value)
	}
}

func (i *IndexMap) AddRow(row *Row) error {

	keys, exists, err := i.keys(row)
	if err != nil {
		return err
	}
	if !exists {
		if i.Options.Sparse {
			return nil
		}
		return fmt.Errorf("field `%s` is indexed and mandatory", i.Options.Field)
	}

	i.RWmutex.Lock()
	defer i.RWmutex.Unlock()

	for _, key := range keys {
		if _, conflict := i.Entries[key]; conflict {
			return fmt.Errorf("index conflict: field '%s' with value '%s'", i.Options.Field, key)
		}
	}
	for _, key := range keys {
		i.Entries[key] = row
	}

	return nil
}

func (i *IndexMap) RemoveRow(row *Row) error {

	keys, _, err := i.keys(row)
	if err != nil {
		return err
	}

	i.RWmutex.Lock()
	defer i.RWmutex.Unlock()

	for _, key := range keys {
		if i.Entries[key] == row {
			delete(i.Entries, key)
		}
	}

	return nil
}

type IndexMapTraverse struct {
	Value string `json:"value"`
}

func (i *IndexMap) Traverse(optionsData []byte, f func(row *Row) bool) {

	options := &IndexMapTraverse{}
	json.Unmarshal(optionsData, options) // malformed options find nothing

	row, ok := i.Get(options.Value)
	if !ok {
		return
	}

	f(row)
}

func (i *IndexMap) Get(value string) (*Row, bool) {
	i.RWmutex.RLock()
	row, ok := i.Entries[value]
	i.RWmutex.RUnlock()
	return row, ok
}
