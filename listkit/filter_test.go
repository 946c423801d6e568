package listkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inventory/listkit"
)

type rec struct {
	Name string
	SKU  string
	Desc *string
}

func recAccessors() []listkit.Accessor[rec] {
	return []listkit.Accessor[rec]{
		listkit.Field(func(r rec) string { return r.Name }),
		listkit.Field(func(r rec) string { return r.SKU }),
		func(r rec) (string, bool) {
			if r.Desc == nil {
				return "", false
			}
			return *r.Desc, true
		},
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	records := []rec{{Name: "Milk"}, {Name: "Bread"}}
	assert.Equal(t, records, listkit.Filter(records, "", recAccessors()...))
	assert.Equal(t, records, listkit.Filter(records, "   ", recAccessors()...))
}

func TestFilterCaseInsensitiveAnyField(t *testing.T) {
	desc := "imported swiss cheese"
	records := []rec{
		{Name: "Milk", SKU: "MK-1"},
		{Name: "Cheese", SKU: "CH-9", Desc: &desc},
		{Name: "Bread", SKU: "br-2"},
	}

	got := listkit.Filter(records, "CH", recAccessors()...)
	assert.Len(t, got, 1)
	assert.Equal(t, "Cheese", got[0].Name)

	// match through the optional description field
	got = listkit.Filter(records, "swiss", recAccessors()...)
	assert.Len(t, got, 1)

	// SKU matching is case-insensitive both ways
	got = listkit.Filter(records, "BR-2", recAccessors()...)
	assert.Len(t, got, 1)
	assert.Equal(t, "Bread", got[0].Name)
}

func TestFilterNilFieldSkipsFieldNotRecord(t *testing.T) {
	records := []rec{{Name: "Milk", Desc: nil}}
	assert.Len(t, listkit.Filter(records, "milk", recAccessors()...), 1)
	assert.Empty(t, listkit.Filter(records, "cheese", recAccessors()...))
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	records := []rec{
		{Name: "apple pie"}, {Name: "grape"}, {Name: "pineapple"}, {Name: "apricot"},
	}
	once := listkit.Filter(records, "ap", recAccessors()...)
	assert.Equal(t, []string{"apple pie", "grape", "pineapple", "apricot"}, names(once))

	twice := listkit.Filter(once, "ap", recAccessors()...)
	assert.Equal(t, once, twice)
}

func names(rs []rec) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestMatch(t *testing.T) {
	assert.True(t, listkit.Match("", "anything"))
	assert.True(t, listkit.Match("ilk", "Milk", "MK-1"))
	assert.False(t, listkit.Match("butter", "Milk", "MK-1"))
}
