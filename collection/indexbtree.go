package collection

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/btree"
)

// IndexBtree keeps rows ordered by one or more fields. A field prefixed with
// "-" sorts descending. Rows with equal values keep insertion order.
type IndexBtree struct {
	Btree   *btree.BTreeG[*RowOrdered]
	Options *IndexBTreeOptions
	mutex   *sync.RWMutex
}

type IndexBTreeOptions struct {
	Fields []string `json:"fields"`
	Sparse bool     `json:"sparse"`
	Unique bool     `json:"unique"`
}

type IndexBtreeTraverse struct {
	Reverse bool                   `json:"reverse"`
	From    map[string]interface{} `json:"from"`
	To      map[string]interface{} `json:"to"`
}

type RowOrdered struct {
	*Row
	Values []interface{}
}

func (r *RowOrdered) seq() int64 {
	if r.Row == nil {
		return -1 // pivots sort before every row with the same values
	}
	return r.Row.Seq
}

func NewIndexBTree(options *IndexBTreeOptions) *IndexBtree {

	descending := make([]bool, len(options.Fields))
	for i, field := range options.Fields {
		descending[i] = strings.HasPrefix(field, "-")
	}

	index := btree.NewG(32, func(a, b *RowOrdered) bool {
		if c := compareKeys(a.Values, b.Values, descending); c != 0 {
			return c < 0
		}
		return a.seq() < b.seq()
	})

	return &IndexBtree{
		Btree:   index,
		Options: options,
		mutex:   &sync.RWMutex{},
	}
}

func compareKeys(a, b []interface{}, descending []bool) int {
	for i, valA := range a {
		c := compareValues(valA, b[i])
		if c == 0 {
			continue
		}
		if descending[i] {
			return -c
		}
		return c
	}
	return 0
}

// compareValues orders decoded JSON scalars: nulls, then booleans, numbers
// and strings.
func compareValues(a, b interface{}) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a := a.(type) {
	case bool:
		bb := b.(bool)
		if a == bb {
			return 0
		}
		if !a {
			return -1
		}
		return 1
	case float64:
		return cmp.Compare(a, b.(float64))
	case string:
		return cmp.Compare(a, b.(string))
	}
	return 0
}

func rank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	}
	return 4
}

func (b *IndexBtree) GetType() string {
	return IndexTypeBTree
}

func (b *IndexBtree) GetOptions() interface{} {
	return b.Options
}

func (b *IndexBtree) values(r *Row) ([]interface{}, bool, error) {

	data, err := decodeRow(r)
	if err != nil {
		return nil, false, err
	}

	values := make([]interface{}, 0, len(b.Options.Fields))
	for _, field := range b.Options.Fields {
		field = strings.TrimPrefix(field, "-")
		value, exists := data[field]
		if !exists {
			return nil, false, nil
		}
		if rank(value) == 4 {
			return nil, true, fmt.Errorf("field '%s' is not a scalar", field)
		}
		values = append(values, value)
	}

	return values, true, nil
}

func (b *IndexBtree) AddRow(r *Row) error {

	values, complete, err := b.values(r)
	if err != nil {
		return err
	}
	if !complete {
		if b.Options.Sparse {
			return nil
		}
		return fmt.Errorf("fields %v are indexed and mandatory", b.Options.Fields)
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.Options.Unique && b.has(values) {
		pairs := make([]string, len(values))
		for i, field := range b.Options.Fields {
			pairs[i] = fmt.Sprint(field, ":", values[i])
		}
		return fmt.Errorf("key (%s) already exists", strings.Join(pairs, ","))
	}

	b.Btree.ReplaceOrInsert(&RowOrdered{
		Row:    r,
		Values: values,
	})

	return nil
}

func (b *IndexBtree) has(values []interface{}) bool {
	found := false
	b.Btree.AscendGreaterOrEqual(&RowOrdered{Values: values}, func(r *RowOrdered) bool {
		found = b.equal(r.Values, values)
		return false
	})
	return found
}

func (b *IndexBtree) equal(a, c []interface{}) bool {
	for i := range a {
		if compareValues(a[i], c[i]) != 0 {
			return false
		}
	}
	return true
}

func (b *IndexBtree) RemoveRow(r *Row) error {

	values, complete, err := b.values(r)
	if err != nil || !complete {
		return err
	}

	b.mutex.Lock()
	b.Btree.Delete(&RowOrdered{Row: r, Values: values})
	b.mutex.Unlock()

	return nil
}

func (b *IndexBtree) pivot(bound map[string]interface{}) *RowOrdered {
	p := &RowOrdered{}
	for _, field := range b.Options.Fields {
		field = strings.TrimPrefix(field, "-")
		p.Values = append(p.Values, bound[field])
	}
	return p
}

// Traverse walks the rows in index order. From is inclusive and To is
// exclusive in both directions.
func (b *IndexBtree) Traverse(optionsData []byte, f func(*Row) bool) {

	options := &IndexBtreeTraverse{}
	json.Unmarshal(optionsData, options) // zero options walk everything

	iterator := func(r *RowOrdered) bool {
		return f(r.Row)
	}

	hasFrom := len(options.From) > 0
	hasTo := len(options.To) > 0
	pivotFrom := b.pivot(options.From)
	pivotTo := b.pivot(options.To)

	b.mutex.RLock()
	defer b.mutex.RUnlock()

	switch {
	case !hasFrom && !hasTo && options.Reverse:
		b.Btree.Descend(iterator)
	case !hasFrom && !hasTo:
		b.Btree.Ascend(iterator)
	case hasFrom && !hasTo && options.Reverse:
		b.Btree.DescendGreaterThan(pivotFrom, iterator)
	case hasFrom && !hasTo:
		b.Btree.AscendGreaterOrEqual(pivotFrom, iterator)
	case !hasFrom && hasTo && options.Reverse:
		b.Btree.DescendLessOrEqual(pivotTo, iterator)
	case !hasFrom && hasTo:
		b.Btree.AscendLessThan(pivotTo, iterator)
	case options.Reverse:
		b.Btree.DescendRange(pivotTo, pivotFrom, iterator)
	default:
		b.Btree.AscendRange(pivotFrom, pivotTo, iterator)
	}
}
