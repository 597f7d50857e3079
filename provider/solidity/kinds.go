package solidity

// Grammar production names this provider pattern-matches on. Kept as named
// constants rather than inline string literals so the transition table in
// provider.go reads like the grammar it pattern-matches.
const (
	kindIdentifier              = "identifier"
	kindNumberLiteral           = "number_literal"
	kindMemberExpression        = "member_expression"
	kindVariableDeclaration     = "variable_declaration"
	kindVariableDeclarationStmt = "variable_declaration_statement"
	kindTupleExpression         = "tuple_expression"
	kindCallExpression          = "call_expression"
	kindCallArgument            = "call_argument"
	kindReturnStatement         = "return_statement"
	kindFunctionDefinition      = "function_definition"
	kindParameter               = "parameter"

	fieldObject   = "object"
	fieldProperty = "property"
	fieldValue    = "value"
	fieldFunction = "function"
	fieldName     = "name"
)

// returnStatementQuery finds every return statement within a subtree
// (typically a function_definition's body), capturing the returned
// expression directly.
const returnStatementQuery = `(return_statement (_) @return_value)`

// callExpressionQuery finds every call expression in a file, used by the
// find_references fallback (see lsp.go).
const callExpressionQuery = `(call_expression function: [
	(identifier) @callee
	(member_expression property: (identifier) @callee)
])`
