package confctl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func removeExpr(t *testing.T, f *File, expr string) {
	t.Helper()
	chain, err := ParsePath(expr)
	require.NoError(t, err)
	require.NoError(t, Remove(f.Root(), chain))
}

func TestRemoveCascadesImplicitContainer(t *testing.T) {
	f, err := Parse([]byte("on lan { addr 10.0.0.1 }\n"), Syntax{})
	require.NoError(t, err)

	removeExpr(t, f, "on.lan")

	// The "on" implicit container cascades away along with "lan" once
	// its last child is gone: nothing of the original statement
	// survives, only whatever trailed the final closing brace.
	require.Empty(t, f.Root().Children)
	require.NotContains(t, string(f.Bytes()), "addr")
	require.NotContains(t, string(f.Bytes()), "10.0.0.1")
}

func TestRemoveLeavesSiblingsUntouched(t *testing.T) {
	f, err := Parse([]byte("a { b 1 }\nc { d 2 }\n"), Syntax{})
	require.NoError(t, err)

	removeExpr(t, f, "a.b")

	// a becomes an empty explicit container (it wasn't implicit, so no
	// cascade); c is untouched byte for byte.
	require.Contains(t, string(f.Bytes()), "c { d 2 }\n")
	require.NotContains(t, string(f.Bytes()), "b 1")
}

func TestRemoveWithValueIsRejected(t *testing.T) {
	f, err := Parse([]byte("a 1\n"), Syntax{})
	require.NoError(t, err)

	chain, err := ParsePath("a=1")
	require.NoError(t, err)

	err = Remove(f.Root(), chain)
	require.Error(t, err)

	var removeErr *RemoveError
	require.ErrorAs(t, err, &removeErr)
}

func TestRemoveNonMatchingPathIsNoop(t *testing.T) {
	src := []byte("a { b 1 }\n")
	f, err := Parse(src, Syntax{})
	require.NoError(t, err)

	removeExpr(t, f, "x.y")

	require.Equal(t, string(src), string(f.Bytes()))
}
