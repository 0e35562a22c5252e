package confctl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func chainNames(n *Node) []string {
	var out []string
	cur := n
	for len(cur.Children) == 1 {
		cur = cur.Children[0]
		out = append(out, cur.Name)
	}
	return out
}

func TestParsePathSimpleChain(t *testing.T) {
	root, err := ParsePath("acl.trusted")
	require.NoError(t, err)
	require.Equal(t, []string{"acl", "trusted"}, chainNames(root))
	require.True(t, root.Children[0].Children[0].IsContainer())
}

func TestParsePathWithValue(t *testing.T) {
	root, err := ParsePath("acl.trusted=10/8")
	require.NoError(t, err)
	leaf := root.Children[0].Children[0]
	require.Equal(t, "trusted", leaf.Name)
	require.True(t, leaf.IsLeaf())
	require.Equal(t, "10/8", leaf.ValueString())
}

func TestParsePathValueMayContainEquals(t *testing.T) {
	root, err := ParsePath("a=b=c")
	require.NoError(t, err)
	require.Equal(t, "b=c", root.Children[0].ValueString())
}

func TestParsePathQuotedSegmentWithDot(t *testing.T) {
	root, err := ParsePath(`'a.b'.c`)
	require.NoError(t, err)
	require.Equal(t, []string{"a.b", "c"}, chainNames(root))
}

func TestParsePathEscapedDot(t *testing.T) {
	root, err := ParsePath(`a\.b.c`)
	require.NoError(t, err)
	require.Equal(t, []string{"a.b", "c"}, chainNames(root))
}

func TestParsePathEmptySegmentIsError(t *testing.T) {
	_, err := ParsePath("a..b")
	require.Error(t, err)
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
}

func TestParsePathUnterminatedQuoteIsError(t *testing.T) {
	_, err := ParsePath(`a."b`)
	require.Error(t, err)
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
}

func TestParsePathEmptyExprIsError(t *testing.T) {
	_, err := ParsePath("")
	require.Error(t, err)
}
