package models

import (
	"github.com/toyz/wired/pkg/wired"
)

// ClassMetadata describes a struct that takes part in the container
type ClassMetadata struct {
	StructName string // name of the struct in its package
	Name       string // fully-qualified type identifier
	FileName   string // file declaring the struct
	Line       int    // line of the struct declaration

	Injectable bool // embeds wired.Injector
	Marker     bool // annotated with //wired::service
	Abstract   bool

	Properties []FieldMetadata
	Methods    []MethodMetadata
	Imports    map[string]string // alias -> import path needed by field and method types
}

// FieldMetadata describes one struct field
type FieldMetadata struct {
	Name     string        // field name
	TypeExpr string        // type as written in source
	Inject   *wired.Marker // nil when the field is not injected
	TypeID   string        // resolved type identifier, empty when unresolvable
}

// MethodMetadata describes a method usable as a setup operation
type MethodMetadata struct {
	Name         string
	Params       []string // parameter types as written in source
	ReturnsError bool
}

// InjectedFields returns the fields carrying an injection marker
func (c *ClassMetadata) InjectedFields() []FieldMetadata {
	var fields []FieldMetadata
	for _, f := range c.Properties {
		if f.Inject != nil {
			fields = append(fields, f)
		}
	}
	return fields
}

// TypeTable returns the resolution table of the declared field types
func (c *ClassMetadata) TypeTable() wired.TypeTable {
	table := make(wired.TypeTable)
	for _, f := range c.Properties {
		if f.TypeID != "" {
			table[wired.TypeRef(f.TypeExpr)] = f.TypeID
		}
	}
	return table
}

// Class converts the metadata into a runtime class without constructors or
// setters. It is enough to plan and compose, not to instantiate.
func (c *ClassMetadata) Class() *wired.Class {
	class := &wired.Class{
		Name:       c.Name,
		Resolve:    c.TypeTable().Resolve,
		Setters:    make(map[string]wired.Setter),
		Injectable: c.Injectable,
		Marker:     c.Marker,
		Abstract:   c.Abstract,
		New:        func() any { return nil },
	}
	for _, f := range c.Properties {
		class.Properties = append(class.Properties, wired.PropertyMetadata{
			Name:         f.Name,
			DeclaredType: wired.TypeRef(f.TypeExpr),
			Inject:       f.Inject,
		})
		if f.Inject != nil {
			class.Setters[f.Name] = func(any, any) error { return nil }
		}
	}
	for _, m := range c.Methods {
		class.Methods = append(class.Methods, m.Name)
	}
	return class
}
