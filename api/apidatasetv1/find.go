package apidatasetv1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/collection"
	"github.com/fulldump/telesync/utils"
)

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	input := struct {
		Mode string
	}{
		Mode: "fullscan",
	}
	err = json.Unmarshal(requestBody, &input)
	if err != nil {
		return err
	}

	f, exist := findModes[input.Mode]
	if !exist {
		return fmt.Errorf("%w: bad mode '%s', must be [%s]", ErrBadRequest, input.Mode, strings.Join(utils.GetKeys(findModes), "|"))
	}

	datasetName := box.GetUrlParameter(ctx, "datasetName")
	d, err := GetServicer(ctx).GetDataset(datasetName)
	if err != nil {
		return err
	}

	return f(requestBody, d.Collection, writeRow(w))
}

var findModes = map[string]func(input []byte, col *collection.Collection, f func(row *collection.Row)) error{
	"fullscan": traverseFullscan,
	"fixes":    traverseFixes,
}

func writeRow(w http.ResponseWriter) func(r *collection.Row) {
	return func(row *collection.Row) {
		w.Write(row.Payload)
		w.Write([]byte("\n"))
	}
}
