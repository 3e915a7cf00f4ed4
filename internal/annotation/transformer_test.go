package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmcy/bulk-annotation-kv/internal/types"
)

func TestTransformValueRenaming(t *testing.T) {
	pair := TransformValue("v", Options{"name": "x", "clientname": "y"})
	assert.Equal(t, "y", pair.Key)
	assert.Equal(t, []string{"v"}, pair.Values)
}

func TestTransformValueHiddenKey(t *testing.T) {
	pair := TransformValue("v", Options{"name": "x", "visible": false})
	assert.Equal(t, "__x", pair.Key)

	pair = TransformValue("v", Options{"name": "x", "visible": true})
	assert.Equal(t, "x", pair.Key)
}

func TestTransformValueSplitStripsWhitespace(t *testing.T) {
	pair := TransformValue("a, b ,c", Options{
		"name":        "genes",
		"split":       ",",
		"clientvalue": "{{ value }}",
	})
	assert.Equal(t, "genes", pair.Key)
	assert.Equal(t, []string{"a", "b", "c"}, pair.Values)
}

func TestTransformValueSplitDisabledByDefault(t *testing.T) {
	// The resolved default for split is the boolean false, not a delimiter.
	pair := TransformValue("a,b", Options{"name": "x", "split": false})
	assert.Equal(t, []string{"a,b"}, pair.Values)
}

func TestTransformValueTemplateAffixes(t *testing.T) {
	pair := TransformValue("GFP", Options{
		"name":        "marker",
		"clientvalue": "prefix-{{ value }}-suffix",
	})
	assert.Equal(t, []string{"prefix-GFP-suffix"}, pair.Values)
}

func TestTransformValueTemplateKeepsDollarSignsLiteral(t *testing.T) {
	// Cell values are spliced in literally; regexp replacement syntax like
	// "$U" must not be expanded away.
	pair := TransformValue("5$USD", Options{
		"name":        "cost",
		"clientvalue": "cost: {{ value }}",
	})
	assert.Equal(t, []string{"cost: 5$USD"}, pair.Values)

	pair = TransformValue("$1", Options{
		"name":        "well",
		"clientvalue": "{{ value }}-plate",
	})
	assert.Equal(t, []string{"$1-plate"}, pair.Values)
}

func TestTransformValueTemplateAppliedPerSplitValue(t *testing.T) {
	pair := TransformValue("a;b", Options{
		"name":        "x",
		"split":       ";",
		"clientvalue": "<{{value}}>",
	})
	assert.Equal(t, []string{"<a>", "<b>"}, pair.Values)
}

func TestTransformEndToEnd(t *testing.T) {
	tr, err := NewKeyValueTransformer(
		[]string{"A", "B"},
		nil,
		[]Options{
			{"name": "A", "clientname": "alpha"},
			{"name": "B", "split": ";"},
		},
	)
	require.NoError(t, err)

	pairs := tr.Transform([]string{"1", "x;y"})
	assert.Equal(t, []types.Pair{
		{Key: "alpha", Values: []string{"1"}},
		{Key: "B", Values: []string{"x", "y"}},
	}, pairs)
}

func TestTransformOutputFollowsConfigOrder(t *testing.T) {
	tr, err := NewKeyValueTransformer(
		[]string{"A", "B", "C"},
		nil,
		[]Options{
			{"name": "C"},
			{"name": "A"},
		},
	)
	require.NoError(t, err)

	pairs := tr.Transform([]string{"1", "2", "3"})
	require.Len(t, pairs, 2)
	assert.Equal(t, "C", pairs[0].Key)
	assert.Equal(t, []string{"3"}, pairs[0].Values)
	assert.Equal(t, "A", pairs[1].Key)
	assert.Equal(t, []string{"1"}, pairs[1].Values)
}

func TestTransformDropsUnconfiguredColumns(t *testing.T) {
	tr, err := NewKeyValueTransformer(
		[]string{"A", "B"},
		nil,
		[]Options{{"name": "B"}},
	)
	require.NoError(t, err)

	pairs := tr.Transform([]string{"1", "2"})
	require.Len(t, pairs, 1)
	assert.Equal(t, "B", pairs[0].Key)
}

func TestTransformRowShapeMismatchPanics(t *testing.T) {
	tr, err := NewKeyValueTransformer(
		[]string{"A", "B"},
		nil,
		[]Options{{"name": "A"}},
	)
	require.NoError(t, err)

	assert.Panics(t, func() { tr.Transform([]string{"1"}) })
	assert.Panics(t, func() { tr.Transform([]string{"1", "2", "3"}) })
}

func TestTransformerUnknownColumnName(t *testing.T) {
	_, err := NewKeyValueTransformer(
		[]string{"A"},
		nil,
		[]Options{{"name": "missing"}},
	)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "missing")
}

func TestTransformerInvalidConfigAbortsConstruction(t *testing.T) {
	tr, err := NewKeyValueTransformer(
		[]string{"A"},
		Options{"bogus": 1},
		[]Options{{"name": "A"}},
	)
	require.Error(t, err)
	assert.Nil(t, tr)
}

func TestDuplicateHeadersCollapseToLast(t *testing.T) {
	// The header index map is a bijection, so duplicate headers collapse
	// to a single entry pointing at the last occurrence.
	tr, err := NewKeyValueTransformer(
		[]string{"A", "A"},
		nil,
		[]Options{{"name": "A"}},
	)
	require.NoError(t, err)

	// The row-shape precondition counts one cell per distinct header, so a
	// physical-width row is rejected.
	assert.Panics(t, func() { tr.Transform([]string{"first", "second"}) })
}

func TestTransformAll(t *testing.T) {
	tr, err := NewKeyValueTransformer(
		[]string{"Gene", "Aliases"},
		nil,
		[]Options{
			{"name": "Gene"},
			{"name": "Aliases", "split": ";", "visible": false},
		},
	)
	require.NoError(t, err)

	rows := tr.TransformAll([][]string{
		{"pax6", "ey; Dmel_CG1464"},
		{"shh", "hhg-1"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []types.Pair{
		{Key: "Gene", Values: []string{"pax6"}},
		{Key: "__Aliases", Values: []string{"ey", "Dmel_CG1464"}},
	}, rows[0])
	assert.Equal(t, []types.Pair{
		{Key: "Gene", Values: []string{"shh"}},
		{Key: "__Aliases", Values: []string{"hhg-1"}},
	}, rows[1])
}
