package paramio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/goliatone/go-params"
	"github.com/goliatone/go-params/internal/payload"
)

// csvHeader labels the columns of the pairwise layout.
var csvHeader = []string{"parameter", "value"}

// csvCodec writes one parameter,value row per pair. Decoded values are
// strings; coercers on the receiving store re-type them.
type csvCodec struct{}

func (csvCodec) Encode(w io.Writer, pairs params.Pairs) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, pair := range pairs {
		if err := writer.Write([]string{pair.Name, cell(pair.Value)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (csvCodec) Decode(r io.Reader) (Payload, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Payload{}, err
	}

	out := Payload{Units: map[string]string{}}
	for i, record := range records {
		if len(record) != 2 {
			continue
		}
		if i == 0 && record[0] == csvHeader[0] && record[1] == csvHeader[1] {
			continue
		}
		out.Pairs = append(out.Pairs, params.P(record[0], record[1]))
	}
	return out, nil
}

// csvRowCodec writes a header row of names and one row of values, and
// decodes a chosen data row against the header.
type csvRowCodec struct {
	row int
}

func (csvRowCodec) Encode(w io.Writer, pairs params.Pairs) error {
	names := make([]string, len(pairs))
	cells := make([]string, len(pairs))
	for i, pair := range pairs {
		names[i] = pair.Name
		cells[i] = cell(pair.Value)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(names); err != nil {
		return err
	}
	if err := writer.Write(cells); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func (c csvRowCodec) Decode(r io.Reader) (Payload, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Payload{}, err
	}
	if len(records) == 0 {
		return Payload{}, errors.New("paramio: empty csv document")
	}

	row := c.row
	if row < 1 {
		row = 1
	}
	if row >= len(records) {
		return Payload{}, fmt.Errorf("paramio: row %d not found in csv document", row)
	}

	names := records[0]
	cells := records[row]
	out := Payload{Units: map[string]string{}}
	for i, name := range names {
		if i >= len(cells) {
			break
		}
		out.Pairs = append(out.Pairs, params.P(name, cells[i]))
	}
	return out, nil
}

// cell renders a value as a CSV field: strings stay as-is, values that
// print themselves use that form, containers become compact JSON.
func cell(value any) string {
	sanitized := payload.Sanitize(value)
	switch v := sanitized.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	switch reflect.ValueOf(sanitized).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if data, err := json.Marshal(sanitized); err == nil {
			return string(data)
		}
	}
	return fmt.Sprint(sanitized)
}
