package apidatasetv1

import (
	"encoding/json"
	"fmt"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/telesync/collection"
)

type traverseParams struct {
	Filter  map[string]interface{} `json:"filter"`
	Skip    int64                  `json:"skip"`
	Limit   int64                  `json:"limit"`
	Reverse bool                   `json:"reverse"`
	From    map[string]interface{} `json:"from"`
	To      map[string]interface{} `json:"to"`
}

func parseTraverseParams(input []byte) (*traverseParams, error) {
	params := &traverseParams{
		Filter: map[string]interface{}{},
		Skip:   0,
		Limit:  1,
	}
	err := json.Unmarshal(input, params)
	if err != nil {
		return nil, err
	}
	return params, nil
}

// filtered applies filter, skip and limit on top of a row iterator.
func filtered(params *traverseParams, f func(row *collection.Row)) (func(row *collection.Row) bool, *error) {

	hasFilter := len(params.Filter) > 0
	skip := params.Skip
	limit := params.Limit
	var matchErr error

	return func(row *collection.Row) bool {

		if limit == 0 {
			return false
		}

		if hasFilter {
			rowData := map[string]interface{}{}
			json.Unmarshal(row.Payload, &rowData)

			match, err := connor.Match(params.Filter, rowData)
			if err != nil {
				matchErr = fmt.Errorf("match: %w", err)
				return false
			}
			if !match {
				return true
			}
		}

		if skip > 0 {
			skip--
			return true
		}

		limit--
		f(row)
		return limit != 0
	}, &matchErr
}

func traverseFullscan(input []byte, col *collection.Collection, f func(row *collection.Row)) error {

	params, err := parseTraverseParams(input)
	if err != nil {
		return err
	}

	iterator, matchErr := filtered(params, f)
	if params.Reverse {
		rows := []*collection.Row{}
		col.Traverse(func(row *collection.Row) bool {
			rows = append(rows, row)
			return true
		})
		for i := len(rows) - 1; i >= 0; i-- {
			if !iterator(rows[i]) {
				break
			}
		}
	} else {
		col.Traverse(iterator)
	}

	return *matchErr
}

// traverseFixes walks runs ordered by number of applied fixes.
func traverseFixes(input []byte, col *collection.Collection, f func(row *collection.Row)) error {

	params, err := parseTraverseParams(input)
	if err != nil {
		return err
	}

	options, err := json.Marshal(collection.IndexBtreeTraverse{
		Reverse: params.Reverse,
		From:    params.From,
		To:      params.To,
	})
	if err != nil {
		return fmt.Errorf("marshal traverse options: %w", err)
	}

	iterator, matchErr := filtered(params, f)
	err = col.TraverseIndex("fixes", options, iterator)
	if err != nil {
		return err
	}

	return *matchErr
}
