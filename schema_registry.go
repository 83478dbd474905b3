package schemalens

// SchemaRegistry provides schema lookup operations.
// Implementations can load schemas from files or any other source that
// produces a consistent snapshot of Schema records.
type SchemaRegistry interface {
	// GetSchemaByName retrieves a schema by its name
	GetSchemaByName(name string) (Schema, error)
	// GetSchemaByID retrieves a schema by its id
	GetSchemaByID(id string) (Schema, error)
	// ListSchemas returns the names of all registered schemas, sorted
	ListSchemas() []string
	// Schemas returns every registered schema ordered by id
	Schemas() []Schema
}
