// Package api holds the OpenAPI description of the dispatch HTTP interface.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var spec []byte

// Spec returns the raw OpenAPI document.
func Spec() []byte {
	return spec
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return doc, nil
}

var registerOnce sync.Once

// RegisterSwagger publishes doc as the default swag document so that
// echo-swagger can serve it. Only the first call has an effect.
func RegisterSwagger(doc *openapi3.T) {
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: doc})
	})
}

type swaggerDoc struct {
	doc *openapi3.T
}

func (s swaggerDoc) ReadDoc() string {
	b, err := s.doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}
