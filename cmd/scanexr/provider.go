package main

import (
	"fmt"

	"github.com/viant/scanexr/cst"
	"github.com/viant/scanexr/provider"
	"github.com/viant/scanexr/provider/solidity"
)

// newProvider maps a registered language name to its concrete
// provider.Provider implementation. Solidity is the one implemented
// provider; additional languages would add a case here backed by their
// own provider/<language> package.
func newProvider(languageName string, parser cst.Parser) (provider.Provider, error) {
	switch languageName {
	case "solidity":
		return solidity.New(parser), nil
	default:
		return nil, fmt.Errorf("no provider implemented for language %q", languageName)
	}
}
