// Package validation computes the single warning code an edit form shows
// before it commits a person, event, subevent, participant, or artist.
//
// Validator applies the required-field and date-swap checks locally and then
// asks the catalog for the same check its mutation runs, so NoWarning means
// the matching catalog call will succeed. Warnings are values, not errors;
// the error return is reserved for storage failures.
package validation
