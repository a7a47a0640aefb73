// Copyright (c) sciflow authors 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema implements a declarative option-set validator. A schema
// is a YAML document mapping field names to a type, a required marker and
// an optional default value:
//
//	exec_path:
//	  type: string
//	  required: true
//	multi:
//	  type: bool
//	  default: false
//
// ApplyDefaults fills absent optional fields from their defaults without
// any strictness; Validate enforces requiredness and types and aggregates
// every violation before failing.
package schema

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrSchemaLoad is returned when a schema document cannot be read or decoded.
	ErrSchemaLoad = errors.New("failed to load schema definition")
	// ErrSchemaValidation is returned when an option set fails strict validation.
	ErrSchemaValidation = errors.New("schema validation failed")
	// ErrUnknownType is returned when a schema field declares an unsupported type.
	ErrUnknownType = errors.New("unknown schema field type")
)

// Supported schema field types.
const (
	TypeString = "string"
	TypeBool   = "bool"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeList   = "list"
)

// Field describes one schema entry.
type Field struct {
	// Type is one of the supported schema field types.
	Type string `yaml:"type"`
	// Required marks the field as mandatory; required fields have no default.
	Required bool `yaml:"required,omitempty"`
	// Default is the value assigned when an optional field is absent. A
	// null default is permitted.
	Default any `yaml:"default,omitempty"`
}

// Definition maps field names to their schema entries.
type Definition map[string]Field

// Load reads and decodes a YAML schema document from path.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrSchemaLoad, err)
	}

	return Parse(data)
}

// Parse decodes a YAML schema document.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Join(ErrSchemaLoad, err)
	}

	for name, field := range def {
		if !slices.Contains([]string{TypeString, TypeBool, TypeInt, TypeFloat, TypeList}, field.Type) {
			return nil, fmt.Errorf("%w: field %q declares type %q", ErrUnknownType, name, field.Type)
		}
	}

	return def, nil
}

// Names returns the schema field names in sorted order.
func (d Definition) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ApplyDefaults returns a copy of opts with every absent optional field
// assigned its default value. No validation is performed.
func (d Definition) ApplyDefaults(opts map[string]any) map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range opts {
		out[k] = v
	}

	for name, field := range d {
		if field.Required {
			continue
		}

		if _, ok := out[name]; !ok {
			out[name] = field.Default
		}
	}

	return out
}

// Validate checks opts strictly against the schema: every required field
// must be present and non-nil, and every present non-nil value must match
// its declared type. All violations are aggregated into the returned
// error, wrapped in ErrSchemaValidation.
func (d Definition) Validate(opts map[string]any) error {
	var result *multierror.Error

	for _, name := range d.Names() {
		field := d[name]

		value, ok := opts[name]
		if !ok || value == nil {
			if field.Required {
				result = multierror.Append(result,
					fmt.Errorf("required field %q is missing", name))
			}

			continue
		}

		if !typeMatches(field.Type, value) {
			result = multierror.Append(result,
				fmt.Errorf("field %q: value %v does not match type %q", name, value, field.Type))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrSchemaValidation, err)
	}

	return nil
}

func typeMatches(fieldType string, value any) bool {
	switch fieldType {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeBool:
		_, ok := value.(bool)
		return ok
	case TypeInt:
		switch value.(type) {
		case int, int32, int64, uint, uint32, uint64:
			return true
		}

		return false
	case TypeFloat:
		switch value.(type) {
		case float32, float64, int, int64, uint64:
			return true
		}

		return false
	case TypeList:
		switch value.(type) {
		case []any, []string:
			return true
		}

		return false
	}

	return false
}
