package core

// Expr is a marker interface for SQL expression nodes.
//
// Nodes are plain data. Translation functions build them, pkg/format renders
// them, and nothing mutates a node after it has been returned.
type Expr interface {
	exprNode() // Marker method to distinguish expressions
}
