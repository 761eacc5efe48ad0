package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryString(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		query *Query
		want  string
	}{
		{
			name:  "empty",
			query: NewQuery("."),
			want:  "",
		},
		{
			name:  "plain",
			query: NewQuery(".", Key("a"), Key("b"), Key("c")),
			want:  "a.b.c",
		},
		{
			name:  "index",
			query: NewQuery(".", Accessed("items", IndexAccessor(2)), Key("name")),
			want:  "items[2].name",
		},
		{
			name: "filter",
			query: NewQuery(".",
				Accessed("items", FilterAccessor(Condition{Field: "status", Value: "active"})),
				Key("id"),
			),
			want: "items[@status=active].id",
		},
		{
			name: "wildcard_with_rest",
			query: NewQuery("/",
				Key("doc"),
				Accessed("items", WildcardAccessor(NewQuery("/", Key("meta"), Key("id")))),
			),
			want: "doc/items[*]/meta/id",
		},
		{
			name:  "wildcard_terminal",
			query: NewQuery(".", Accessed("items", WildcardAccessor(nil))),
			want:  "items[*]",
		},
		{
			name:  "literal",
			query: NewQuery(".", Literal("odd[key"), Key("x")),
			want:  "odd[key.x",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.query.String())
		})
	}
}

func TestSegmentAccessors(t *testing.T) {
	t.Parallel()

	s := Accessed("items", IndexAccessor(1))
	assert.Equal(t, "items", s.Key())
	assert.Equal(t, Index, s.Accessor().Kind)
	assert.False(t, s.Absorbed())
	assert.Equal(t, "items[1]", s.String())

	l := Literal("items[x]")
	assert.True(t, l.Absorbed())
	assert.Equal(t, None, l.Accessor().Kind)
}
