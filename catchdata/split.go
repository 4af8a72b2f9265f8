package catchdata

import (
	"bytes"
	"fmt"

	"gf-data-miner/ds"
	"github.com/iancoleman/orderedmap"
)

// Split parses every newline-terminated line of text; whatever follows the
// last newline is ignored. Lines naming the same table append to it. Any
// line that is not a single-key object of record arrays fails the whole
// split. Numbers are kept as json.Number so that no digit is lost.
func Split(text []byte) (*Tables, error) {
	lines := bytes.Split(text, []byte("\n"))
	lines = lines[:len(lines)-1]

	tables := ds.NewLinkedHashMap[string, []orderedmap.OrderedMap]()
	for i, line := range lines {
		lineNumber := i + 1
		value, err := ds.DecodeOrderedJSON(line)
		if err != nil {
			return nil, ErrMalformedLine{Line: lineNumber, Err: err}
		}
		lineMap, ok := value.(orderedmap.OrderedMap)
		if !ok {
			err := fmt.Errorf("line is a %T, not an object", value)
			return nil, ErrMalformedLine{Line: lineNumber, Err: err}
		}
		keys := lineMap.Keys()
		if len(keys) != 1 {
			return nil, ErrMalformedLine{Line: lineNumber, Keys: keys}
		}
		name := keys[0]
		tableValue, _ := lineMap.Get(name)
		rows, ok := tableValue.([]any)
		if !ok {
			err := fmt.Errorf(`table "%s" is a %T, not an array`, name, tableValue)
			return nil, ErrMalformedLine{Line: lineNumber, Keys: keys, Err: err}
		}

		records, _ := tables.Get(name)
		for j, row := range rows {
			record, ok := toRecord(row)
			if !ok {
				err := fmt.Errorf(`table "%s" row %d is a %T, not an object`, name, j, row)
				return nil, ErrMalformedLine{Line: lineNumber, Keys: keys, Err: err}
			}
			records = append(records, record)
		}
		if records == nil {
			records = make([]orderedmap.OrderedMap, 0)
		}
		tables.Put(name, records)
	}

	return tables, nil
}

func toRecord(row any) (orderedmap.OrderedMap, bool) {
	switch record := row.(type) {
	case orderedmap.OrderedMap:
		return record, true
	case *orderedmap.OrderedMap:
		return *record, true
	}
	return orderedmap.OrderedMap{}, false
}
