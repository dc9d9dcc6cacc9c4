package collection

import (
	"testing"

	"github.com/poiesic/jsonstore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(path, content string) *core.Item {
	return &core.Item{Path: path, FileName: path, Content: content}
}

// contents maps each save-set path to its content.
func contents(plan *Plan) map[string]string {
	m := make(map[string]string, len(plan.Items))
	for _, it := range plan.Items {
		m[it.Path] = it.Content
	}
	return m
}

func paths(plan *Plan) []string {
	out := make([]string, len(plan.Items))
	for i, it := range plan.Items {
		out[i] = it.Path
	}
	return out
}

func TestMerge_SkipExisting(t *testing.T) {
	existing := []*core.Item{item("a.json", "old-a"), item("b.json", "old-b")}
	incoming := []*core.Item{item("b", "new-b"), item("c", "new-c")}

	plan := Merge(existing, incoming, SkipExisting)

	assert.Equal(t, SkipExisting, plan.Policy)
	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, paths(plan))
	assert.Equal(t, "old-b", contents(plan)["b.json"], "on-disk item wins")
	assert.Equal(t, 2, plan.Carried)
	assert.Equal(t, 1, plan.Added)
	assert.Equal(t, 1, plan.Skipped)
	assert.Equal(t, 0, plan.Overwritten)
	assert.Equal(t, 0, plan.Duplicates)
}

func TestMerge_OverwriteExisting(t *testing.T) {
	existing := []*core.Item{item("a.json", "old-a"), item("b.json", "old-b")}
	incoming := []*core.Item{item("b", "new-b"), item("c", "new-c")}

	plan := Merge(existing, incoming, OverwriteExisting)

	assert.Equal(t, []string{"b.json", "c.json", "a.json"}, paths(plan))
	assert.Equal(t, "new-b", contents(plan)["b.json"], "incoming item wins")
	assert.Equal(t, "old-a", contents(plan)["a.json"], "unrelated item survives")
	assert.Equal(t, 1, plan.Carried)
	assert.Equal(t, 1, plan.Added)
	assert.Equal(t, 1, plan.Overwritten)
	assert.Equal(t, 0, plan.Skipped)
}

func TestMerge_WithinBatchDuplicates(t *testing.T) {
	incoming := []*core.Item{
		item("x", "first"),
		item("x.json", "second"),
		item("/x", "third"),
	}

	for _, policy := range []Policy{SkipExisting, OverwriteExisting} {
		t.Run(policy.String(), func(t *testing.T) {
			plan := Merge(nil, incoming, policy)
			require.Len(t, plan.Items, 1)
			assert.Equal(t, "first", plan.Items[0].Content)
			assert.Equal(t, 1, plan.Added)
			assert.Equal(t, 2, plan.Duplicates)
		})
	}
}

func TestMerge_DuplicateExistingItems(t *testing.T) {
	existing := []*core.Item{item("a.json", "one"), item("a.json", "two")}

	plan := Merge(existing, []*core.Item{}, SkipExisting)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "one", plan.Items[0].Content)
	assert.Equal(t, 1, plan.Duplicates)

	plan = Merge(existing, []*core.Item{item("a", "new")}, OverwriteExisting)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "new", plan.Items[0].Content)
	assert.Equal(t, 1, plan.Overwritten)
	assert.Equal(t, 1, plan.Duplicates)
}

func TestMerge_TopLevelBeatsNestedNamesake(t *testing.T) {
	nested := item("x.json", "nested")
	nested.Depth = 1
	existing := []*core.Item{nested, item("x.json", "top")}

	for _, policy := range []Policy{SkipExisting, OverwriteExisting} {
		t.Run(policy.String(), func(t *testing.T) {
			plan := Merge(existing, []*core.Item{item("z", "new")}, policy)
			require.Len(t, plan.Items, 2)

			byKey := map[string]string{}
			for _, it := range plan.Items {
				byKey[it.Key()] = it.Content
			}
			assert.Equal(t, "top", byKey["x"])
			assert.Equal(t, "new", byKey["z"])
			assert.Equal(t, 1, plan.Carried)
			assert.Equal(t, 1, plan.Added)
			assert.Equal(t, 1, plan.Duplicates)
		})
	}
}

func TestMerge_UniqueKeys(t *testing.T) {
	existing := []*core.Item{item("a.json", "1"), item("b.json", "2"), item("c.json", "3")}
	incoming := []*core.Item{item("c", "4"), item("d", "5"), item("a.json.json", "6"), item("d", "7")}

	for _, policy := range []Policy{SkipExisting, OverwriteExisting} {
		t.Run(policy.String(), func(t *testing.T) {
			plan := Merge(existing, incoming, policy)
			seen := map[string]bool{}
			for _, it := range plan.Items {
				assert.False(t, seen[it.Key()], "duplicate key %s", it.Key())
				seen[it.Key()] = true
			}
			assert.Len(t, plan.Items, 4)
			assert.Equal(t, len(plan.Items), plan.Added+plan.Carried+plan.Overwritten)
		})
	}
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	in := item("a", "x")
	plan := Merge(nil, []*core.Item{in}, SkipExisting)

	require.Len(t, plan.Items, 1)
	assert.Equal(t, "a.json", plan.Items[0].Path)
	assert.Equal(t, "a", in.Path)
	assert.NotSame(t, in, plan.Items[0])
}

func TestMerge_Empty(t *testing.T) {
	plan := Merge(nil, nil, OverwriteExisting)
	assert.Empty(t, plan.Items)
	assert.Zero(t, plan.Added)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"skip", SkipExisting, false},
		{"Skip-Existing", SkipExisting, false},
		{"overwrite", OverwriteExisting, false},
		{" OVERWRITE ", OverwriteExisting, false},
		{"replace", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "Policy(7)", Policy(7).String())
}
