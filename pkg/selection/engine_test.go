package selection

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaidlaw/pwdbview/pkg/catalog"
	"github.com/rlaidlaw/pwdbview/pkg/logging"
	"github.com/rlaidlaw/pwdbview/pkg/model"
	"github.com/rlaidlaw/pwdbview/pkg/signal"
)

func newEngine() *Engine {
	return NewEngine(logging.NewNopLogger())
}

func TestBuild_MissingTypesDropSilently(t *testing.T) {
	cat := catalog.New("/data/Complete", []int{1, 4, 6}, []string{"Radial_U"})

	items, err := newEngine().Build(Filters{
		Sites: []string{"Radial"},
		Types: []signal.Type{signal.Velocity, signal.Pressure},
	}, []*catalog.Catalog{cat})
	require.NoError(t, err)

	// One item per subject; pressure is silently absent
	require.Len(t, items, 3)
	for i, subject := range []int{1, 4, 6} {
		assert.Equal(t, subject, items[i].Subject)
		assert.Equal(t, "Radial_U", items[i].Key.Name())
	}
}

func TestBuild_CanonicalOrdering(t *testing.T) {
	names := []string{"Brachial_P", "Brachial_U", "Radial_P", "Radial_U"}
	cat := catalog.New("/data/Complete", []int{2, 1}, names)

	items, err := newEngine().Build(Filters{
		Sites: []string{"Radial", "Brachial"},
		Types: []signal.Type{signal.Velocity, signal.Pressure},
	}, []*catalog.Catalog{cat})
	require.NoError(t, err)

	// subject ascending, then site in filter order, then type in
	// recognized order (P before U)
	var got []string
	for _, item := range items {
		got = append(got, item.Key.Name())
	}
	want := []string{
		"Radial_P", "Radial_U", "Brachial_P", "Brachial_U", // subject 1
		"Radial_P", "Radial_U", "Brachial_P", "Brachial_U", // subject 2
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 1, items[0].Subject)
	assert.Equal(t, 2, items[4].Subject)
}

func TestBuild_PathSupersedesSites(t *testing.T) {
	modelText := "Inlet node\tOutlet node\tName\n" +
		"1\t2\tAscending Aorta\n" +
		"2\t3\tLeft Brachial Artery\n" +
		"3\t4\tLeft Radial Artery\n"
	g, err := model.NewBuilder(nil).Build(strings.NewReader(modelText))
	require.NoError(t, err)
	path, err := g.ResolvePath("Radial")
	require.NoError(t, err)

	names := []string{"Femoral_P", "AorticRoot_P", "Brachial_P", "Radial_P"}
	cat := catalog.New("/data/Complete", []int{1}, names)

	items, err := newEngine().Build(Filters{
		Sites: []string{"Femoral"}, // superseded by the path
		Types: []signal.Type{signal.Pressure},
		Path:  path,
	}, []*catalog.Catalog{cat})
	require.NoError(t, err)

	var got []string
	for _, item := range items {
		got = append(got, item.Key.Name())
	}
	// Path order, root first
	assert.Equal(t, []string{"AorticRoot_P", "Brachial_P", "Radial_P"}, got)
}

func TestBuild_SignalAllowList(t *testing.T) {
	names := []string{"Radial_P", "Radial_U", "Brachial_P"}
	cat := catalog.New("/data/Complete", []int{1}, names)

	keys, err := signal.ParseNameList("Radial_U")
	require.NoError(t, err)

	items, err := newEngine().Build(Filters{Signals: keys}, []*catalog.Catalog{cat})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Radial_U", items[0].Key.Name())
}

func TestBuild_UnknownSubjectsDropped(t *testing.T) {
	cat := catalog.New("/data/Complete", []int{1, 2}, []string{"Radial_U"})

	items, err := newEngine().Build(Filters{
		Subjects: []int{1, 2, 99},
		Types:    []signal.Type{signal.Velocity},
	}, []*catalog.Catalog{cat})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestBuild_EmptyRootIsWarningOnly(t *testing.T) {
	empty := catalog.New("/data/PCoA", []int{1}, []string{"Femoral_P"})
	full := catalog.New("/data/Complete", []int{1}, []string{"Radial_U"})

	items, err := newEngine().Build(Filters{
		Sites: []string{"Radial"},
		Types: []signal.Type{signal.Velocity},
	}, []*catalog.Catalog{empty, full})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "/data/Complete", items[0].Root)
}

func TestBuild_AllSubjectsAbsentWarnsForRoot(t *testing.T) {
	// The PCoA root has the requested signal but none of the requested
	// subjects, so it contributes nothing and warrants the same per-root
	// warning as a root with no matching keys
	sparse := catalog.New("/data/PCoA", []int{1, 2}, []string{"Radial_U"})
	full := catalog.New("/data/Complete", []int{9}, []string{"Radial_U"})

	var buf bytes.Buffer
	engine := NewEngine(logging.NewJSONLogger(&buf, logging.WarnLevel))

	items, err := engine.Build(Filters{
		Subjects: []int{9},
		Types:    []signal.Type{signal.Velocity},
	}, []*catalog.Catalog{sparse, full})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "/data/Complete", items[0].Root)

	assert.Contains(t, buf.String(), "selection is empty for dataset root")
	assert.Contains(t, buf.String(), "/data/PCoA")
}

func TestBuild_EmptyOverallFails(t *testing.T) {
	cat := catalog.New("/data/Complete", []int{1}, []string{"Femoral_P"})

	_, err := newEngine().Build(Filters{
		Sites: []string{"Radial"},
	}, []*catalog.Catalog{cat})
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestBuild_UnknownTypeRejected(t *testing.T) {
	cat := catalog.New("/data/Complete", []int{1}, []string{"Radial_U"})

	_, err := newEngine().Build(Filters{
		Types: []signal.Type{"ECG"},
	}, []*catalog.Catalog{cat})
	assert.ErrorIs(t, err, signal.ErrUnknownType)
}

func TestBuild_MCAAliasAcrossRoots(t *testing.T) {
	complete := catalog.New("/data/Complete", []int{1}, []string{"MCA_P"})
	variant := catalog.New("/data/ACoA", []int{1}, []string{"LMCA_P"})

	keys, err := signal.ParseNameList("LMCA_P")
	require.NoError(t, err)

	items, err := newEngine().Build(Filters{
		Signals: keys,
		Sites:   []string{"LMCA"},
		Types:   []signal.Type{signal.Pressure},
	}, []*catalog.Catalog{complete, variant})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "MCA_P", items[0].HeaderName)
	assert.Equal(t, "LMCA_P", items[1].HeaderName)
}

func TestBuild_Idempotent(t *testing.T) {
	names := []string{"Radial_P", "Radial_U", "Brachial_P", "Brachial_U"}
	cat := catalog.New("/data/Complete", []int{1, 2, 3}, names)
	filters := Filters{Subjects: []int{1, 3}}

	first, err := newEngine().Build(filters, []*catalog.Catalog{cat})
	require.NoError(t, err)
	second, err := newEngine().Build(filters, []*catalog.Catalog{cat})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQuery_PathOrder(t *testing.T) {
	modelText := "Inlet node\tOutlet node\tName\n" +
		"1\t2\tAscending Aorta\n" +
		"2\t3\tLeft Brachial Artery\n" +
		"3\t4\tLeft Radial Artery\n"
	g, err := model.NewBuilder(nil).Build(strings.NewReader(modelText))
	require.NoError(t, err)
	path, err := g.ResolvePath("Radial")
	require.NoError(t, err)

	names := []string{"AorticRoot_P", "AorticRoot_U", "Brachial_P", "Radial_U"}
	cat := catalog.New("/data/Complete", []int{1}, names)

	entries, err := newEngine().Query(Filters{Path: path}, []*catalog.Catalog{cat})
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "AorticRoot", entries[0].Prefix)
	assert.Equal(t, []signal.Type{signal.Pressure, signal.Velocity}, entries[0].Types)
	assert.Equal(t, "Brachial", entries[1].Prefix)
	assert.Equal(t, []signal.Type{signal.Pressure}, entries[1].Types)
	assert.Equal(t, "Radial", entries[2].Prefix)
	assert.Equal(t, []signal.Type{signal.Velocity}, entries[2].Types)
}

func TestWriteQuery_Format(t *testing.T) {
	entries := []QueryEntry{
		{Prefix: "Radial", Site: "Left Radial Artery", Types: []signal.Type{signal.Pressure, signal.Velocity}},
	}
	var sb strings.Builder
	require.NoError(t, WriteQuery(&sb, entries))
	assert.Equal(t, "Radial (Left Radial Artery): [P U]\n", sb.String())
}
