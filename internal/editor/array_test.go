package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitJoin_RoundTrip(t *testing.T) {
	seqs := [][]string{
		{"A"},
		{"A", "B"},
		{"PARS123", "PARS456", "PARS789"},
		{"", "x", ""},
	}
	for _, seq := range seqs {
		assert.Equal(t, seq, SplitList(JoinList(seq)))
	}
}

func TestSplitJoin_EmptyAsymmetry(t *testing.T) {
	// Joining an empty list yields "", but loading "" yields one blank row.
	// The screen always needs a row to type into, so the empty string does
	// not round-trip to an empty list.
	assert.Equal(t, "", JoinList(nil))
	assert.Equal(t, "", JoinList([]string{}))
	assert.Equal(t, []string{""}, SplitList(""))
}

func arrayGroup(t *testing.T, pars string) (*Group, *ArrayField) {
	t.Helper()
	g := NewGroup(Config{
		ID:       "ticket:REF100",
		Fields:   []string{"pars", "carrier_name"},
		Baseline: Values{"pars": pars, "carrier_name": "ACME"},
	})
	return g, AttachArrayField(g, "pars")
}

func TestArrayField_LoadsRowsFromOwner(t *testing.T) {
	_, a := arrayGroup(t, "A,B")
	assert.Equal(t, []string{"A", "B"}, a.Rows())

	_, empty := arrayGroup(t, "")
	assert.Equal(t, []string{""}, empty.Rows(), "empty source still renders one editable row")
}

func TestArrayField_MutationSequence(t *testing.T) {
	g, a := arrayGroup(t, "A,B")
	require.True(t, g.BeginEdit())
	a.Reset()

	require.NoError(t, a.Remove(0))
	assert.Equal(t, []string{"B"}, a.Rows())

	require.NoError(t, a.Add())
	assert.Equal(t, []string{"B", ""}, a.Rows())

	require.NoError(t, a.Update(1, "C"))
	assert.Equal(t, []string{"B", "C"}, a.Rows())

	assert.Equal(t, "B,C", g.Get("pars"), "owner draft tracks the flattened rows")
}

func TestArrayField_IndexErrors(t *testing.T) {
	g, a := arrayGroup(t, "A,B")
	require.True(t, g.BeginEdit())
	a.Reset()

	for _, idx := range []int{-1, 2, 99} {
		assert.True(t, errors.Is(a.Remove(idx), ErrIndexOutOfRange), "remove %d", idx)
		assert.True(t, errors.Is(a.Update(idx, "x"), ErrIndexOutOfRange), "update %d", idx)
	}
	assert.Equal(t, []string{"A", "B"}, a.Rows(), "failed operations leave rows untouched")
}

func TestArrayField_RequiresEditingOwner(t *testing.T) {
	_, a := arrayGroup(t, "A")

	assert.True(t, errors.Is(a.Add(), ErrNotEditing))
	assert.True(t, errors.Is(a.Remove(0), ErrNotEditing))
	assert.True(t, errors.Is(a.Update(0, "x"), ErrNotEditing))
}

func TestArrayField_RequiresEditableField(t *testing.T) {
	g := NewGroup(Config{
		ID:       "ticket",
		Fields:   []string{"pars", "carrier_name"},
		Editable: func(f string) bool { return f != "pars" },
		Baseline: Values{"pars": "A", "carrier_name": "ACME"},
	})
	a := AttachArrayField(g, "pars")
	require.True(t, g.BeginEdit())
	a.Reset()

	assert.True(t, errors.Is(a.Add(), ErrFieldNotEditable))
}

func TestArrayField_ResetAfterCancel(t *testing.T) {
	g, a := arrayGroup(t, "A,B")
	require.True(t, g.BeginEdit())
	a.Reset()
	require.NoError(t, a.Update(0, "mutated"))

	g.Cancel()
	a.Reset()

	assert.Equal(t, []string{"A", "B"}, a.Rows())
}

func TestArrayField_SurvivesSaveCommit(t *testing.T) {
	g, a := arrayGroup(t, "A")
	require.True(t, g.BeginEdit())
	a.Reset()
	require.NoError(t, a.Add())
	require.NoError(t, a.Update(1, "B"))

	payload, ok := g.Submit()
	require.True(t, ok)
	assert.Equal(t, "A,B", payload["pars"])

	g.Resolve(payload, nil)
	a.Reset()
	assert.Equal(t, []string{"A", "B"}, a.Rows())
	assert.Equal(t, "A,B", g.Baseline()["pars"])
}
