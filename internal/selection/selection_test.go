package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosolid/internal/editor"
)

type fakeObject struct {
	id   string
	kind editor.Kind
}

func (f *fakeObject) SelectableKind() editor.Kind { return f.kind }
func (f *fakeObject) SelectableID() string        { return f.id }

type fakePart struct {
	fakeObject
	owner editor.Selectable
}

func (p *fakePart) Owner() editor.Selectable { return p.owner }

func solid(id string) *fakeObject { return &fakeObject{id: id, kind: editor.KindSolid} }

func ids(items []editor.Selectable) []string {
	return Snapshot(items).IDs()
}

func TestApplyModifiers(t *testing.T) {
	a, b, c := solid("a"), solid("b"), solid("c")

	tests := []struct {
		name        string
		initial     []editor.Selectable
		items       []editor.Selectable
		mod         Modifier
		wantSet     []string
		wantRemoved []string
	}{
		{name: "replace", initial: []editor.Selectable{a, b}, items: []editor.Selectable{c}, mod: Replace, wantSet: []string{"c"}, wantRemoved: []string{"a", "b"}},
		{name: "replace keeps common", initial: []editor.Selectable{a, b}, items: []editor.Selectable{b}, mod: Replace, wantSet: []string{"b"}, wantRemoved: []string{"a"}},
		{name: "add", initial: []editor.Selectable{a}, items: []editor.Selectable{a, c}, mod: Add, wantSet: []string{"a", "c"}, wantRemoved: []string{}},
		{name: "remove", initial: []editor.Selectable{a, b}, items: []editor.Selectable{a, c}, mod: Remove, wantSet: []string{"b"}, wantRemoved: []string{"a"}},
		{name: "toggle", initial: []editor.Selectable{a, b}, items: []editor.Selectable{b, c}, mod: Toggle, wantSet: []string{"a", "c"}, wantRemoved: []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newItemSet()
			for _, item := range tt.initial {
				set.add(item)
			}
			removed := apply(set, tt.items, tt.mod)

			if diff := cmp.Diff(tt.wantSet, ids(set.Items())); diff != "" {
				t.Errorf("set mismatch (-want +got):\n%s", diff)
			}
			assert.ElementsMatch(t, tt.wantRemoved, ids(removed))
		})
	}
}

func TestSortIntersectionsTieBreak(t *testing.T) {
	a, b, c := solid("a"), solid("b"), solid("c")
	hits := []Intersection{
		{Object: c, Distance: 2, Order: 0},
		{Object: b, Distance: 1, Order: 5},
		{Object: a, Distance: 1, Order: 3},
	}
	SortIntersections(hits)

	got := []string{hits[0].Object.SelectableID(), hits[1].Object.SelectableID(), hits[2].Object.SelectableID()}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestChangerOnClickReplaceSelectsFirst(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	changer := NewChanger(db)

	var events []editor.SelectionChange
	sigs.ObjectSelected.Add(func(c editor.SelectionChange) { events = append(events, c) })

	near, far := solid("near"), solid("far")
	ok := changer.OnClick([]Intersection{
		{Object: far, Distance: 3},
		{Object: near, Distance: 1},
	}, Replace)

	require.True(t, ok)
	assert.Equal(t, []string{"near"}, ids(db.Selected().Items()))
	require.Len(t, events, 1)
	assert.Equal(t, []string{"near"}, ids(events[0].Items))
	assert.Equal(t, []string{"near"}, ids(events[0].Current))
}

func TestChangerOnClickEmpty(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	db.Select([]editor.Selectable{solid("kept")}, Replace)
	changer := NewChanger(db)

	emitted := 0
	sigs.ObjectSelected.Add(func(editor.SelectionChange) { emitted++ })

	assert.False(t, changer.OnClick(nil, Replace))
	assert.Equal(t, 0, emitted)
	assert.Equal(t, 1, db.Selected().Len(), "an empty click leaves the selection to the caller")
}

func TestChangerRespectsModes(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs, editor.KindCurve)
	changer := NewChanger(db)

	curve := &fakeObject{id: "curve", kind: editor.KindCurve}
	ok := changer.OnClick([]Intersection{
		{Object: solid("solid"), Distance: 1},
		{Object: curve, Distance: 2},
	}, Replace)

	require.True(t, ok)
	assert.Equal(t, []string{"curve"}, ids(db.Selected().Items()))

	assert.False(t, changer.OnBoxSelect([]editor.Selectable{solid("x")}, Add))
}

func TestChangerBoxSelectIsAtomic(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	changer := NewChanger(db)
	items := []editor.Selectable{solid("a"), solid("b"), solid("c")}

	var observed []int
	sigs.ObjectSelected.Add(func(editor.SelectionChange) {
		observed = append(observed, db.Selected().Len())
	})

	require.True(t, changer.OnBoxSelect(items, Replace))
	assert.Equal(t, []int{3}, observed, "handlers see the complete result exactly once")
}

func TestChangerHover(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	changer := NewChanger(db)

	hovered, unhovered, selected := 0, 0, 0
	sigs.ObjectHovered.Add(func(editor.SelectionChange) { hovered++ })
	sigs.ObjectUnhovered.Add(func(editor.SelectionChange) { unhovered++ })
	sigs.ObjectSelected.Add(func(editor.SelectionChange) { selected++ })

	a := solid("a")
	require.True(t, changer.OnHover([]Intersection{{Object: a, Distance: 1}}, Replace))
	assert.True(t, db.Hovered().Has(a))
	assert.False(t, db.Selected().Has(a))

	assert.False(t, changer.OnHover(nil, Replace))
	assert.Equal(t, 0, db.Hovered().Len())
	assert.Equal(t, 1, hovered)
	assert.Equal(t, 1, unhovered)
	assert.Equal(t, 0, selected, "hover never selects")
}

func TestChangerClear(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	changer := NewChanger(db)
	changer.OnBoxSelect([]editor.Selectable{solid("a")}, Replace)

	var deselected []editor.SelectionChange
	sigs.ObjectDeselected.Add(func(c editor.SelectionChange) { deselected = append(deselected, c) })
	changer.Clear()
	changer.Clear()

	assert.Equal(t, 0, db.Selected().Len())
	require.Len(t, deselected, 1)
	assert.Len(t, deselected[0].Items, 1)
	assert.Empty(t, deselected[0].Current)
}

func TestChangerClearHover(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	changer := NewChanger(db)
	a := solid("a")
	changer.OnBoxHover([]editor.Selectable{a}, Replace)

	var unhovered []editor.SelectionChange
	sigs.ObjectUnhovered.Add(func(c editor.SelectionChange) { unhovered = append(unhovered, c) })
	changer.ClearHover()
	changer.ClearHover()

	assert.Equal(t, 0, db.Hovered().Len())
	require.Len(t, unhovered, 1)
	assert.Equal(t, []editor.Selectable{a}, unhovered[0].Items)
	assert.Empty(t, unhovered[0].Current)
}

func TestTemporaryOverlayIsolation(t *testing.T) {
	baseSignals := editor.NewSignals()
	base := NewDatabase(baseSignals)
	kept := solid("kept")
	base.Select([]editor.Selectable{kept}, Replace)

	baseEvents := 0
	baseSignals.ObjectSelected.Add(func(editor.SelectionChange) { baseEvents++ })

	sessionSignals := editor.NewSignals()
	overlay := base.MakeTemporary([]editor.Kind{editor.KindSolid}, sessionSignals)
	require.True(t, overlay.Temporary())
	assert.Equal(t, 0, overlay.Selected().Len(), "overlay reads only session state")

	picked := solid("picked")
	NewChanger(overlay).OnClick([]Intersection{{Object: picked, Distance: 1}}, Replace)
	assert.Equal(t, []string{"picked"}, ids(overlay.Selected().Items()))
	assert.Equal(t, []string{"kept"}, ids(base.Selected().Items()))
	assert.Equal(t, 0, baseEvents)

	overlay.Dispose()
	assert.Equal(t, 0, overlay.Selected().Len())
	assert.Equal(t, 0, sessionSignals.ObjectRemoved.Len())
	assert.Equal(t, []string{"kept"}, ids(base.Selected().Items()))
}

func TestMergeOverlay(t *testing.T) {
	baseSignals := editor.NewSignals()
	base := NewDatabase(baseSignals)
	base.Select([]editor.Selectable{solid("a")}, Replace)

	overlay := base.MakeTemporary(nil, editor.NewSignals())
	overlay.Select([]editor.Selectable{solid("b")}, Replace)

	selectedEvents := 0
	baseSignals.ObjectSelected.Add(func(editor.SelectionChange) { selectedEvents++ })
	base.Merge(overlay, Add)

	assert.Equal(t, []string{"a", "b"}, ids(base.Selected().Items()))
	assert.Equal(t, 1, selectedEvents)
}

func TestRemovedObjectsAreForgotten(t *testing.T) {
	sigs := editor.NewSignals()
	db := NewDatabase(sigs)
	owner := solid("owner")
	face := &fakePart{fakeObject: fakeObject{id: "owner/face/0", kind: editor.KindFace}, owner: owner}
	other := solid("other")
	db.Select([]editor.Selectable{owner, face, other}, Replace)
	db.Hover([]editor.Selectable{face}, Replace)

	sigs.ObjectRemoved.Dispatch(owner)

	assert.Equal(t, []string{"other"}, ids(db.Selected().Items()))
	assert.Equal(t, 0, db.Hovered().Len())
}

func TestModesToggleEmits(t *testing.T) {
	sigs := editor.NewSignals()
	modes := NewModes(sigs, editor.KindSolid)

	var got [][]editor.Kind
	sigs.SelectionModeChanged.Add(func(k []editor.Kind) { got = append(got, k) })

	modes.Toggle(editor.KindCurve)
	modes.Toggle(editor.KindSolid)

	assert.True(t, modes.Has(editor.KindCurve))
	assert.False(t, modes.Has(editor.KindSolid))
	assert.Equal(t, [][]editor.Kind{{editor.KindSolid, editor.KindCurve}, {editor.KindCurve}}, got)
}
