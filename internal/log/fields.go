package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldKey       = "key"
	FieldPath      = "path"
	FieldCompanyID = "company_id"
	FieldCardID    = "card_id"
	FieldSource    = "source"
	FieldCount     = "count"
	FieldLine      = "line"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentStorage   = "storage"
	ComponentSettings  = "settings"
	ComponentDashboard = "dashboard"
	ComponentEnrich    = "enrich"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpWrite    = "write"
	OpDelete   = "delete"
	OpList     = "list"
	OpImport   = "import"
	OpParse    = "parse"
	OpMigrate  = "migrate"
	OpValidate = "validate"
)

// Fields provides a builder for structured log fields
type Fields map[string]any

// NewFields creates an empty Fields
func NewFields() Fields {
	return make(Fields)
}

// WithOperation adds the operation field
func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error field
func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// With adds an arbitrary field
func (f Fields) With(key string, value any) Fields {
	f[key] = value
	return f
}

// ToSlice converts Fields to alternating key/value args for slog
func (f Fields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
