// Package translate maps dataframe-style operation names onto SQL expression
// builders.
//
// An operation is a translation function plus optional type hints (*Op).
// Operations live in immutable context tables (*Table), one per call context:
// scalar, aggregate and window. A dialect derives its tables from shared base
// tables by merging overrides (NewTable), and bundles them with its two column
// kinds into a *Translator.
//
// Translation functions are pure. They receive the positional and keyword
// arguments of one call node (Call) and return a core.Expr.
package translate
