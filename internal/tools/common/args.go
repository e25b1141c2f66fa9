package common

// GetDocumentFromArgs extracts the target document ID from request arguments.
// Returns an empty string when no document_id argument is present, which the
// instrumented handlers treat as "no document to record".
func GetDocumentFromArgs(args map[string]interface{}) string {
	if docVal, ok := args["document_id"].(string); ok {
		return docVal
	}
	return ""
}
