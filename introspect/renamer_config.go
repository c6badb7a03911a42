package introspect

import (
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// LoadRenameRules bulk-registers RenameRules from a JSON document shaped as
//
//	{
//	  "<topic_id>": [
//	    {"prefix": "", "array_field": "position", "name_field": "name"},
//	    ...
//	  ]
//	}
//
// It streams the document with jsonparser (ObjectEach/ArrayEach) rather
// than unmarshalling into a struct, the same idiom dynamic_message_json.go
// uses for untrusted payload JSON.
func (r *Registry) LoadRenameRules(doc []byte) error {
	var outerErr error
	err := jsonparser.ObjectEach(doc, func(topicKey []byte, topicValue []byte, dataType jsonparser.ValueType, offset int) error {
		if outerErr != nil {
			return nil
		}
		if dataType != jsonparser.Array {
			outerErr = errors.New("rename rule entry for " + string(topicKey) + " is not an array")
			return nil
		}
		topicID := string(topicKey)

		jsonparser.ArrayEach(topicValue, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil || outerErr != nil {
				return
			}
			if dataType != jsonparser.Object {
				outerErr = errors.New("rename rule for " + topicID + " is not an object")
				return
			}
			prefix, _ := jsonparser.GetString(value, "prefix")
			arrayField, aerr := jsonparser.GetString(value, "array_field")
			nameField, nerr := jsonparser.GetString(value, "name_field")
			if aerr != nil || nerr != nil {
				outerErr = errors.New("rename rule for " + topicID + " missing array_field/name_field")
				return
			}
			if regErr := r.RegisterRenameRule(topicID, prefix, arrayField, nameField); regErr != nil {
				outerErr = regErr
			}
		})
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "parsing rename rule document")
	}
	return outerErr
}
