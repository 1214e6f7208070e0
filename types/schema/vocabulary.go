package schema

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	ORDER_KEYWORD        = "order"
	ORDER_VOCABULARY_URL = "https://open-adr.org/schema/vocab/order"

	orderMetaSchema = `{
		"properties": {
			"order": { "type": "number" }
		}
	}`
)

// orderVocabulary accepts the numeric "order" keyword that schema authoring
// tools emit to keep properties sorted. It never fails validation.
func orderVocabulary() (*jsonschema.Vocabulary, error) {
	document, err := jsonschema.UnmarshalJSON(strings.NewReader(orderMetaSchema))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(ORDER_VOCABULARY_URL, document); err != nil {
		return nil, err
	}
	metaSchema, err := compiler.Compile(ORDER_VOCABULARY_URL)
	if err != nil {
		return nil, err
	}

	return &jsonschema.Vocabulary{
		URL:     ORDER_VOCABULARY_URL,
		Schema:  metaSchema,
		Compile: compileOrder,
	}, nil
}

func compileOrder(ctx *jsonschema.CompilerContext, obj map[string]any) (jsonschema.SchemaExt, error) {
	if _, ok := obj[ORDER_KEYWORD]; !ok {
		return nil, nil
	}
	return orderKeyword{}, nil
}

type orderKeyword struct{}

func (orderKeyword) Validate(ctx *jsonschema.ValidatorContext, v any) {}
