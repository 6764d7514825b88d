package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldStage names the upstream call being made (lookup, create-product)
	FieldStage = "stage"

	// FieldTable is the Airtable table being addressed
	FieldTable = "table"

	// FieldRecordID is an Airtable record identifier
	FieldRecordID = "record_id"
)

// Standard metric fields, attached at the emitting call site.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldStatus is the HTTP status of the handled request
	FieldStatus = "status"

	// FieldSize is the response size in bytes
	FieldSize = "size"
)
