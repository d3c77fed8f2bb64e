/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNullArgument is returned when a required type, property or value is missing
	ErrNullArgument = errors.New("null argument")

	// ErrMappingAlreadyExists is returned when adding a mapping over an occupied key without force
	ErrMappingAlreadyExists = errors.New("mapping already exists")

	// ErrPropertyNotFound is returned when a lookup descriptor does not match any property of the type
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidMappingType is returned when a value does not implement the capability a domain requires
	ErrInvalidMappingType = errors.New("invalid mapping type")

	// ErrInvalidArgument is returned when a value fails simple validation (e.g. a blank name)
	ErrInvalidArgument = errors.New("invalid argument")
)

// NullArgumentError represents a missing required argument
type NullArgumentError struct {
	Argument string
}

func (e *NullArgumentError) Error() string {
	return fmt.Sprintf("argument %q must not be nil", e.Argument)
}

func (e *NullArgumentError) Is(target error) bool {
	return target == ErrNullArgument
}

// MappingExistsError represents an add against an occupied key
type MappingExistsError struct {
	Domain string
	Target string
}

func (e *MappingExistsError) Error() string {
	return fmt.Sprintf("%s mapping for %q already exists", e.Domain, e.Target)
}

func (e *MappingExistsError) Is(target error) bool {
	return target == ErrMappingAlreadyExists
}

// PropertyNotFoundError represents a property name that does not resolve on a type
type PropertyNotFoundError struct {
	Type     string
	Property string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q is not found on type %s", e.Property, e.Type)
}

func (e *PropertyNotFoundError) Is(target error) bool {
	return target == ErrPropertyNotFound
}

// InvalidMappingTypeError represents a value lacking a required capability
type InvalidMappingTypeError struct {
	Domain   string
	Type     string
	Required string
}

func (e *InvalidMappingTypeError) Error() string {
	return fmt.Sprintf("%s mapping: type %s does not implement %s", e.Domain, e.Type, e.Required)
}

func (e *InvalidMappingTypeError) Is(target error) bool {
	return target == ErrInvalidMappingType
}

// InvalidArgumentError represents an argument that failed validation
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	if e.Argument != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Helper functions for creating errors

// NewNullArgumentError creates a new NullArgumentError
func NewNullArgumentError(argument string) error {
	return &NullArgumentError{Argument: argument}
}

// NewMappingExistsError creates a new MappingExistsError
func NewMappingExistsError(domain, target string) error {
	return &MappingExistsError{Domain: domain, Target: target}
}

// NewPropertyNotFoundError creates a new PropertyNotFoundError
func NewPropertyNotFoundError(typeName, property string) error {
	return &PropertyNotFoundError{Type: typeName, Property: property}
}

// NewInvalidMappingTypeError creates a new InvalidMappingTypeError
func NewInvalidMappingTypeError(domain, typeName, required string) error {
	return &InvalidMappingTypeError{Domain: domain, Type: typeName, Required: required}
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(argument, message string) error {
	return &InvalidArgumentError{Argument: argument, Message: message}
}

// IsNullArgument checks if an error is a null argument error
func IsNullArgument(err error) bool {
	return errors.Is(err, ErrNullArgument)
}

// IsMappingAlreadyExists checks if an error is a mapping already exists error
func IsMappingAlreadyExists(err error) bool {
	return errors.Is(err, ErrMappingAlreadyExists)
}

// IsPropertyNotFound checks if an error is a property not found error
func IsPropertyNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound)
}

// IsInvalidMappingType checks if an error is an invalid mapping type error
func IsInvalidMappingType(err error) bool {
	return errors.Is(err, ErrInvalidMappingType)
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
