package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// repository errors
const ErrRunNotFound = Error("run not found")
const ErrInvalidName = Error("invalid name")
const ErrTableNotFound = Error("table not found")

// etl errors
const ErrNoDataFiles = Error("no data files found in archive")
const ErrColumnNotFound = Error("required column not found")
const ErrSchemaMismatch = Error("existing table does not match the games schema")
const ErrRowCountMismatch = Error("row count verification failed")
