package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginatorPage(t *testing.T) {
	p := New(numbers(13), 10)
	assert.Equal(t, 13, p.Count())
	assert.Equal(t, 2, p.NumPages())

	first, err := p.Page(1)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.Equal(t, 2, first.NextPageNumber())

	second, err := p.Page(2)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 13}, second.Items)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.PreviousPageNumber())
	assert.Equal(t, 11, second.StartIndex(10))

	_, err = p.Page(3)
	assert.ErrorIs(t, err, ErrEmptyPage)
	_, err = p.Page(0)
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestPaginatorGetPage(t *testing.T) {
	p := New(numbers(13), 10)

	tests := []struct {
		name   string
		raw    string
		number int
		items  int
	}{
		{name: "missing", raw: "", number: 1, items: 10},
		{name: "first", raw: "1", number: 1, items: 10},
		{name: "second", raw: "2", number: 2, items: 3},
		{name: "not an integer", raw: "abc", number: 1, items: 10},
		{name: "out of range", raw: "99", number: 2, items: 3},
		{name: "zero", raw: "0", number: 2, items: 3},
		{name: "negative", raw: "-4", number: 2, items: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := p.GetPage(tt.raw)
			require.NotNil(t, page)
			assert.Equal(t, tt.number, page.Number)
			assert.Len(t, page.Items, tt.items)
		})
	}
}

func TestPaginatorEmpty(t *testing.T) {
	p := New([]string{}, 10)
	assert.Equal(t, 1, p.NumPages())

	page := p.GetPage("5")
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.Equal(t, 0, page.StartIndex(10))
	assert.Equal(t, []int{1}, page.PageRange())
}

func TestPaginatorDefaultPerPage(t *testing.T) {
	p := New(numbers(25), 0)
	assert.Equal(t, 3, p.NumPages())
	assert.Len(t, p.GetPage("1").Items, DefaultPerPage)
}

func TestPageDoesNotAliasSource(t *testing.T) {
	src := numbers(3)
	page := New(src, 10).GetPage("1")
	page.Items[0] = 100
	assert.Equal(t, 1, src[0])
}
