package jsonene

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/nikhil-rupanawar/jsonene/i18n"
)

// ToJSON serializes the owned raw value to indented JSON text.
func (i *Instance) ToJSON() ([]byte, error) {
	return json.MarshalIndent(i.Serialize(), "", "  ")
}

// FromJSON parses JSON text into a raw value and binds a fresh Instance of
// the given field. Parsing never validates; call Validate explicitly.
// Numbers are decoded as json.Number so integer checks stay exact.
func FromJSON(f Field, data []byte) (*Instance, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, map[string]string{"detail": err.Error()})}}
	}
	return f.Bind(v), nil
}

// ExportJSON renders the field's JSON Schema document as indented JSON text.
func ExportJSON(f Field) ([]byte, error) {
	return json.MarshalIndent(ExportSchema(f), "", "  ")
}
