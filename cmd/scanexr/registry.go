package main

import (
	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/oracle"
)

// parserFactory builds the cst.Parser for one registered language, bound to
// whatever concrete grammar binding that language needs (e.g. a
// tree-sitter Solidity grammar). oracleFactory builds the LspOracle
// connection for a given project root.
//
// Neither the tree-sitter grammar binding nor the JSON-RPC language-server
// transport ships with this module — see DESIGN.md for why no concrete
// implementation ships here. A deployment wires its own by calling
// registerLanguage from an init() in a sibling file (optionally behind a
// build tag naming the grammar/server it links against).
type parserFactory func() (cst.Parser, error)
type oracleFactory func(projectRoot string) (oracle.Oracle, error)

type languageBinding struct {
	parser parserFactory
	oracle oracleFactory
}

var languages = map[string]languageBinding{}

// registerLanguage makes a language name available to the CLI's positional
// <language-name> argument.
func registerLanguage(name string, parser parserFactory, oracle oracleFactory) {
	languages[name] = languageBinding{parser: parser, oracle: oracle}
}
