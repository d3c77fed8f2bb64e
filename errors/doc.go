/*
Package errors provides semantic error types for the EntityMap library.

Every failure raised by a mapper falls into one of five kinds, each with a
sentinel that can be checked with the standard errors.Is() function or the
provided helper functions:

	var (
	    ErrNullArgument         = errors.New("null argument")
	    ErrMappingAlreadyExists = errors.New("mapping already exists")
	    ErrPropertyNotFound     = errors.New("property not found")
	    ErrInvalidMappingType   = errors.New("invalid mapping type")
	    ErrInvalidArgument      = errors.New("invalid argument")
	)

Usage:

	err := mapping.AddTable[Customer](m.Table, "Clients", false)
	if errors.IsMappingAlreadyExists(err) {
	    // an earlier directive already mapped Customer
	}

	// Create typed errors
	err := errors.NewPropertyNotFoundError("models.Customer", "Nickname")
	err := errors.NewInvalidArgumentError("table", "must not be blank")

Get and Remove never return ErrMappingAlreadyExists or report a missing
entry as an error: absence is a normal state for those operations.
*/
package errors
