package tree

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/pcky"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dogBarks() *Node {
	n := NewInternal("N", 0, 1, NewLeaf("dog", 0))
	v := NewInternal("V", 0, 1, NewLeaf("barks", 1))
	s := NewInternal("S", 0, 1, n, v)
	return NewInternal("TOP", 0, 1, s)
}

func TestRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.tree")
	defer teardown()
	//
	root := dogBarks()
	assert.Equal(t, "( TOP ( S ( N dog ) ( V barks ) ) )", root.String())
	assert.Equal(t, "dog", NewLeaf("dog", 0).String())
	assert.Equal(t, pcky.Span{0, 2}, root.Span)
	assert.Equal(t, 3, root.Height())
}

func TestLeaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.tree")
	defer teardown()
	//
	assert.Equal(t, []string{"dog", "barks"}, dogBarks().Leaves())
	var labels []string
	var levels []int
	dogBarks().Walk(func(n *Node, level int) {
		labels = append(labels, n.Label)
		levels = append(levels, level)
	})
	assert.Equal(t, []string{"TOP", "S", "N", "dog", "V", "barks"}, labels)
	assert.Equal(t, []int{0, 1, 2, 3, 2, 3}, levels)
}

func TestProbability(t *testing.T) {
	n := NewInternal("S", math.Log(0.25), 2, NewLeaf("x", 0))
	assert.InDelta(t, 0.25, n.Probability(), 1e-12)
	assert.Equal(t, uint64(2), n.NumParses)
	assert.True(t, NewLeaf("x", 0).IsLeaf())
	assert.False(t, n.IsLeaf())
}

func TestReadRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.tree")
	defer teardown()
	//
	text := "( TOP ( S ( NP ( D the ) ( N dog ) ) ( V barks ) ) )"
	root, err := Read(text)
	require.NoError(t, err)
	assert.Equal(t, text, root.String())
	assert.Equal(t, []string{"the", "dog", "barks"}, root.Leaves())
	assert.Equal(t, pcky.Span{0, 3}, root.Span)
	assert.Equal(t, pcky.Span{1, 2}, root.Children[0].Children[0].Children[1].Span)
	//
	again, err := Read(dogBarks().String())
	require.NoError(t, err)
	assert.True(t, Equal(dogBarks(), again))
	assert.False(t, Equal(dogBarks(), root))
}

func TestReadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pcky.tree")
	defer teardown()
	//
	for _, s := range []string{
		"",
		"( TOP",
		"( TOP dog ) )",
		"( TOP )",
		"( ( N dog ) )",
		")",
	} {
		_, err := Read(s)
		if assert.Error(t, err, "expected %q to fail", s) {
			assert.True(t, errors.Is(err, ErrSyntax), "expected syntax error for %q, got %v", s, err)
		}
	}
}
