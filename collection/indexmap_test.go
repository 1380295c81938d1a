package collection

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/fulldump/biff"
)

func TestIndexMap_MultiValue(t *testing.T) {

	index := NewIndexMap(&IndexMapOptions{Field: "tags"})
	row := &Row{Payload: []byte(`{"tags":["dut0","dut1"]}`)}

	biff.AssertNil(index.AddRow(row))

	found, ok := index.Get("dut1")
	biff.AssertTrue(ok)
	biff.AssertEqual(found, row)

	err := index.AddRow(&Row{Payload: []byte(`{"tags":["dut1"]}`)})
	biff.AssertEqual(err.Error(), "index conflict: field 'tags' with value 'dut1'")

	biff.AssertNil(index.RemoveRow(row))
	biff.AssertEqual(len(index.Entries), 0)
}

func TestIndexMap_UnsupportedType(t *testing.T) {

	index := NewIndexMap(&IndexMapOptions{Field: "fixes"})
	err := index.AddRow(&Row{Payload: []byte(`{"fixes":3}`)})

	biff.AssertEqual(err.Error(), "field 'fixes': type float64 not supported")
}

func TestIndexMap_RemoveRow_Race(t *testing.T) {

	index := NewIndexMap(&IndexMapOptions{Field: "id"})

	payload, _ := json.Marshal(map[string]interface{}{"id": "run-id"})

	wg := &sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			index.AddRow(&Row{Payload: payload})
		}()
		go func() {
			defer wg.Done()
			index.RemoveRow(&Row{Payload: payload})
		}()
	}
	wg.Wait()

	// only the owner of an entry can remove it
	biff.AssertEqual(len(index.Entries), 1)
}
