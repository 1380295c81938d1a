package collection

import (
	"encoding/json"
	"fmt"
)

const (
	IndexTypeMap   = "map"
	IndexTypeBTree = "btree"
)

type Index interface {
	AddRow(row *Row) error
	RemoveRow(row *Row) error
	Traverse(options []byte, f func(row *Row) bool)
	GetType() string
	GetOptions() interface{}
}

func newIndex(options interface{}) (Index, error) {
	switch value := options.(type) {
	case *IndexMapOptions:
		return NewIndexMap(value), nil
	case *IndexBTreeOptions:
		return NewIndexBTree(value), nil
	default:
		return nil, fmt.Errorf("unexpected index options %T, it should be [map|btree]", options)
	}
}

func decodeIndexOptions(indexType string, data []byte) (interface{}, error) {
	var options interface{}
	switch indexType {
	case IndexTypeMap:
		options = &IndexMapOptions{}
	case IndexTypeBTree:
		options = &IndexBTreeOptions{}
	default:
		return nil, fmt.Errorf("unknown index type '%s'", indexType)
	}
	err := json.Unmarshal(data, options)
	if err != nil {
		return nil, fmt.Errorf("decode %s index options: %w", indexType, err)
	}
	return options, nil
}

// decodeRow reads the top level fields of a row, numbers as float64.
func decodeRow(row *Row) (map[string]interface{}, error) {
	item := map[string]interface{}{}
	err := json.Unmarshal(row.Payload, &item)
	if err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return item, nil
}
