// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package proof

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jsonschemav6 "github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema returns the JSON Schema document describing Proof, reflected
// from the struct definition. It is exposed to callers via the
// gen-schema CLI subcommand so external tooling can validate the
// engine's output without depending on this module.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	return reflector.Reflect(&Proof{})
}

var (
	compileOnce sync.Once
	compiled    *jsonschemav6.Schema
	compileErr  error
)

// Validate checks that data (the JSON encoding of a Proof) conforms to
// Schema. The compiled validator is built once and reused across calls.
func Validate(data []byte) error {
	compileOnce.Do(func() {
		compiled, compileErr = compileSchema()
	})
	if compileErr != nil {
		return oops.Wrapf(compileErr, "proof: compile schema")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return oops.Wrapf(err, "proof: decode instance")
	}
	if err := compiled.Validate(doc); err != nil {
		return oops.Wrapf(err, "proof: instance does not satisfy schema")
	}
	return nil
}

func compileSchema() (*jsonschemav6.Schema, error) {
	raw, err := json.Marshal(Schema())
	if err != nil {
		return nil, oops.Wrapf(err, "proof: marshal generated schema")
	}

	var schemaDoc any
	if err := json.Unmarshal(raw, &schemaDoc); err != nil {
		return nil, oops.Wrapf(err, "proof: decode generated schema")
	}

	compiler := jsonschemav6.NewCompiler()
	const resource = "proof.schema.json"
	if err := compiler.AddResource(resource, schemaDoc); err != nil {
		return nil, oops.Wrapf(err, "proof: add schema resource")
	}
	return compiler.Compile(resource)
}
