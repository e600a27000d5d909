// Package core defines the shared language of the siuba translator.
//
// This package contains:
//   - The SQL expression AST produced by translation functions (Expr nodes)
//   - Value-type labels used by type annotations (ValueType)
//   - Identifier and placeholder configuration shared by dialects
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
