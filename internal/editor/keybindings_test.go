package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeybindingsTracksRegistrations(t *testing.T) {
	sigs := NewSignals()
	keys := NewKeybindings(sigs)

	sigs.KeybindingsRegistered.Dispatch([]string{"command:finish", "command:abort"})
	sigs.KeybindingsRegistered.Dispatch([]string{"command:abort"})
	assert.Equal(t, []string{"command:abort", "command:finish"}, keys.Commands())

	sigs.KeybindingsCleared.Dispatch([]string{"command:finish", "command:abort"})
	assert.Equal(t, []string{"command:abort"}, keys.Commands())

	keys.Dispose()
	sigs.KeybindingsCleared.Dispatch([]string{"command:abort"})
	assert.Equal(t, []string{"command:abort"}, keys.Commands())
	assert.Equal(t, 0, sigs.KeybindingsCleared.Len())
}

func TestBelongs(t *testing.T) {
	owner := &testObject{id: "o"}
	part := &testPart{testObject: testObject{id: "o/face/0"}, owner: owner}
	other := &testObject{id: "x"}

	assert.True(t, Belongs(owner, owner))
	assert.True(t, Belongs(part, owner))
	assert.False(t, Belongs(other, owner))
	assert.False(t, Belongs(owner, part))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindSolid, KindCurve, KindFace, KindEdge, KindControlPoint} {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("vertex")
	assert.False(t, ok)
}

type testObject struct{ id string }

func (o *testObject) SelectableKind() Kind { return KindSolid }
func (o *testObject) SelectableID() string { return o.id }

type testPart struct {
	testObject
	owner Selectable
}

func (p *testPart) Owner() Selectable { return p.owner }
