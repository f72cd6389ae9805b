package sortorder

import (
	"testing"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(v ...int) []domain.TreeID {
	out := make([]domain.TreeID, len(v))
	for i, x := range v {
		out[i] = domain.TreeID(x)
	}
	return out
}

func TestCompare_FallsBackToDefaultLanguage(t *testing.T) {
	o := New("en").SetForLanguage("en", ids(3, 1, 2))

	assert.Equal(t, ids(3, 1, 2), o.SiblingOrder("de", ids(1, 2, 3)))
	assert.Negative(t, o.Compare("de", 3, 1))
}

func TestCompare_UnrankedSortsLast(t *testing.T) {
	o := New("en").SetForLanguage("en", ids(2, 1))

	assert.Equal(t, ids(2, 1, 9), o.SiblingOrder("en", ids(9, 1, 2)))
	assert.Equal(t, Unranked, o.EffectiveRank("en", 9))
}

func TestCompare_LanguageSetWinsOverDefault(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2)).
		SetForLanguage("de", ids(2, 1))

	assert.Equal(t, ids(1, 2), o.SiblingOrder("en", ids(2, 1)))
	assert.Equal(t, ids(2, 1), o.SiblingOrder("de", ids(1, 2)))
}

func TestSetForLanguage_DoesNotMutateReceiver(t *testing.T) {
	base := New("en").SetForLanguage("en", ids(1, 2))
	next := base.SetForLanguage("en", ids(2, 1))

	r, _ := base.Rank("en", 1)
	assert.Equal(t, 0, r)
	r, _ = next.Rank("en", 1)
	assert.Equal(t, 1, r)
}

func TestSetForLanguage_KeepsOtherSiblingGroups(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2)).
		SetForLanguage("en", ids(10, 11))

	assert.Equal(t, 4, o.Len("en"))
}

func TestMerge(t *testing.T) {
	base := New("en").SetForLanguage("en", ids(1, 2))
	other := New("en").SetForLanguage("en", ids(3))

	merged := base.Merge(other, false)
	assert.Equal(t, 3, merged.Len("en"))

	replaced := base.Merge(other, true)
	assert.Equal(t, 1, replaced.Len("en"))
	_, ok := replaced.Rank("en", 1)
	assert.False(t, ok)
}

func TestAddFromNode(t *testing.T) {
	n := &domain.MenuNode{TreeID: 7, LocalizedSortOrders: map[string]int{"en": 2, "de": 0}}

	o := New("en").AddFromNode(n)

	assert.Equal(t, map[string]int{"en": 2, "de": 0}, o.ForNode(7))
	assert.Nil(t, o.ForNode(8))
}

func TestSanitize_DropsIncompleteAndIdenticalLanguages(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2, 3)).
		SetForLanguage("de", ids(1, 2, 3)).
		SetForLanguage("fr", ids(3, 2)).
		SetForLanguage("es", ids(3, 2, 1))

	got := o.Sanitize(-1)

	assert.Equal(t, []string{"en", "es"}, got.Languages())
}

func TestSanitize_ExpectedCountOverridesDefaultSize(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2, 3)).
		SetForLanguage("es", ids(3, 2, 1))

	assert.Equal(t, []string{"en"}, o.Sanitize(4).Languages())
	assert.Equal(t, []string{"en", "es"}, o.Sanitize(3).Languages())
}

func TestExpand_CopiesDefault(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2)).
		SetForLanguage("es", ids(2, 1))

	got := o.Expand([]string{"en", "de", "es"})

	require.True(t, got.Has("de"))
	assert.Equal(t, ids(1, 2), got.SiblingOrder("de", ids(2, 1)))
	assert.Equal(t, ids(2, 1), got.SiblingOrder("es", ids(1, 2)))
	assert.False(t, o.Has("de"))
}

func TestRemoveAndRenumber(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2, 3)).
		SetForLanguage("de", ids(3, 2, 1))

	o = o.Remove(2).Renumber(ids(1, 3))

	for _, lang := range []string{"en", "de"} {
		_, ok := o.Rank(lang, 2)
		assert.False(t, ok, lang)
	}
	r1, _ := o.Rank("en", 1)
	r3, _ := o.Rank("en", 3)
	assert.Equal(t, []int{0, 1}, []int{r1, r3})
	r1, _ = o.Rank("de", 1)
	r3, _ = o.Rank("de", 3)
	assert.Equal(t, []int{1, 0}, []int{r1, r3})
}

func TestReconcileOnMove_LinkedLanguagesFollow(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2, 3)).
		SetForLanguage("de", ids(1, 2, 3))

	o = o.ReconcileOnMove("en", ids(1, 2, 3), ids(3, 1, 2), 3)

	assert.Equal(t, ids(3, 1, 2), o.SiblingOrder("en", ids(1, 2, 3)))
	assert.Equal(t, ids(3, 1, 2), o.SiblingOrder("de", ids(1, 2, 3)))
}

func TestReconcileOnMove_DivergedLanguageKeepsOwnOrder(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2, 3, 4)).
		SetForLanguage("de", ids(4, 3, 2, 1))

	o = o.ReconcileOnMove("en", ids(1, 2, 3, 4), ids(2, 1, 3, 4), 1)

	assert.Equal(t, ids(2, 1, 3, 4), o.SiblingOrder("en", ids(1, 2, 3, 4)))
	assert.Equal(t, ids(4, 1, 3, 2), o.SiblingOrder("de", ids(1, 2, 3, 4)))
}

func TestReconcileOnMove_FromNonDefaultLanguage(t *testing.T) {
	o := New("en").
		SetForLanguage("en", ids(1, 2, 3)).
		SetForLanguage("de", ids(1, 2, 3))

	o = o.ReconcileOnMove("de", ids(1, 2, 3), ids(2, 3, 1), 1)

	assert.Equal(t, ids(2, 3, 1), o.SiblingOrder("en", ids(1, 2, 3)))
	assert.Equal(t, ids(2, 3, 1), o.SiblingOrder("de", ids(1, 2, 3)))
}
