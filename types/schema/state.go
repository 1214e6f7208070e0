package schema

import (
	"github.com/Marvin-Brouwer/open-adr/types/interfaces"
)

const SCHEMA_DATA_KEY = "odr:schema-data"

// SchemaData is what the loader leaves on a document for the linter.
type SchemaData struct {
	SchemaURL string
	Validator *Validator
}

func GetSchemaData(document interfaces.Document) (*SchemaData, bool) {
	value, ok := document.GetData(SCHEMA_DATA_KEY)
	if !ok {
		return nil, false
	}

	data, ok := value.(*SchemaData)
	if !ok || data == nil || data.Validator == nil {
		return nil, false
	}
	return data, true
}

func SetSchemaData(document interfaces.Document, data *SchemaData) {
	document.SetData(SCHEMA_DATA_KEY, data)
}
