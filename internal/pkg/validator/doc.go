// Package validator wraps struct validation behind a single interface.
//
// Use cases call Validate on their input structs and map the returned
// field errors to invalid-input responses. The concrete implementation is
// go-playground/validator v10.
package validator
