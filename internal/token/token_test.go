package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {
		require.Equal(t, val, LookupIdentifier(key))

		// Once the keywords are uppercase they'll no longer
		// match - so we find them as identifiers.
		require.Equal(t, IDENT, LookupIdentifier(strings.ToUpper(key)))
	}
}

func TestLookupRequiresExactMatch(t *testing.T) {
	for _, ident := range []string{"an", "andy", "classy", "fals", "fo", "fun_", "iff", "nill", "thiss", "vars"} {
		require.Equal(t, IDENT, LookupIdentifier(ident), ident)
	}
}

func TestTypeNames(t *testing.T) {
	for typ := Type(0); typ < Count; typ++ {
		require.NotEmpty(t, typ.String(), "type %d has no name", typ)
	}
	require.Equal(t, "Type(200)", Type(200).String())
	require.Equal(t, "==", EQUAL_EQUAL.String())
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: NUMBER, Lexeme: "1.5", Line: 3}
	require.Equal(t, `NUMBER "1.5" (line 3)`, tok.String())
}
