package parser

// DocumentStats contains statistical information about a Swagger document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of definitions
}

// GetDocumentStats returns statistics for a parsed document
func GetDocumentStats(doc *Document) DocumentStats {
	if doc == nil {
		return DocumentStats{}
	}
	stats := DocumentStats{
		PathCount:   doc.Paths.Len(),
		SchemaCount: doc.Definitions.Len(),
	}
	for _, item := range doc.Paths.All() {
		for range item.Operations() {
			stats.OperationCount++
		}
	}
	return stats
}
