package tool

// ParamSpec describes one parameter in a tool's input schema.
type ParamSpec struct {
	// Type is the parameter's wire type ("string", "number", ...).
	Type string
	// Description is shown to the calling agent when it plans tool use.
	Description string
	// Default is the value substituted when the caller omits the field.
	Default string
	// Required marks fields the invocation refuses to run without.
	Required bool
}

// Meta is a tool's static descriptor: name, human-readable description,
// and typed input schema. Meta values are constructed once at agent
// definition time and never mutated afterwards.
type Meta struct {
	Name        string
	Description string
	Parameters  map[string]ParamSpec
}

// Widget types for input form rendering.
const (
	WidgetLine      = "line"
	WidgetParagraph = "paragraph"
)

// FormField describes how one input field should be rendered in a UI.
// Purely descriptive; it carries no validation semantics.
type FormField struct {
	Label  string
	Widget string
}

// InputForm maps field names to their display descriptors.
type InputForm map[string]FormField
