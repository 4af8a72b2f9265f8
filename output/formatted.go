package output

import (
	"bytes"
	"encoding/json"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// IsBlank reports whether a field carries no information: an empty string,
// the string "0", or a zero number or false.
func IsBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value == "" || value == "0"
	case json.Number:
		f, err := value.Float64()
		return err == nil && f == 0
	case bool:
		return !value
	case int8:
		return value == 0
	case int16:
		return value == 0
	case int32:
		return value == 0
	case int64:
		return value == 0
	case int:
		return value == 0
	case uint8:
		return value == 0
	case uint16:
		return value == 0
	case float32:
		return value == 0
	case float64:
		return value == 0
	}
	return false
}

// Formatted renders records as a YAML sequence. Blank fields are left out;
// the remaining fields keep their order.
func Formatted(records []orderedmap.OrderedMap) ([]byte, error) {
	sequence := &yaml.Node{Kind: yaml.SequenceNode}
	for _, record := range records {
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range record.Keys() {
			value, _ := record.Get(key)
			if IsBlank(value) {
				continue
			}
			valueNode, err := toNode(value)
			if err != nil {
				return nil, errors.Wrapf(err, `output.Formatted error encoding field "%s"`, key)
			}
			mapping.Content = append(mapping.Content, stringNode(key), valueNode)
		}
		sequence.Content = append(sequence.Content, mapping)
	}
	buffer := bytes.Buffer{}
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(sequence); err != nil {
		return nil, errors.Wrap(err, "output.Formatted error")
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "output.Formatted error")
	}
	return buffer.Bytes(), nil
}

func WriteFormatted(path string, records []orderedmap.OrderedMap) error {
	bs, err := Formatted(records)
	if err != nil {
		return errors.Wrapf(err, "output.WriteFormatted error writing %s", path)
	}
	return WriteFile(path, bs)
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// toNode keeps nested objects in the order they were read; yaml.v3 would
// otherwise see an OrderedMap as a struct without exported fields.
func toNode(value any) (*yaml.Node, error) {
	switch typedValue := value.(type) {
	case orderedmap.OrderedMap:
		return orderedNode(typedValue)
	case *orderedmap.OrderedMap:
		return orderedNode(*typedValue)
	case json.Number:
		tag := "!!int"
		if _, err := typedValue.Int64(); err != nil {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: typedValue.String()}, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range typedValue {
			itemNode, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}

func orderedNode(om orderedmap.OrderedMap) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range om.Keys() {
		value, _ := om.Get(key)
		valueNode, err := toNode(value)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, stringNode(key), valueNode)
	}
	return node, nil
}
