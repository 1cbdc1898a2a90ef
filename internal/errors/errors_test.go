package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	base := stderrors.New("likelihood out of range")
	err := New(base).
		Component("risk").
		Category(CategoryValidation).
		Context("field", "base_likelihood").
		Context("constraint", "0.0..1.0").
		Build()

	assert.Equal(t, "likelihood out of range", err.Error())
	assert.Equal(t, "risk", err.Component)
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, "base_likelihood", err.Context["field"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("something went wrong").Build()
	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
}

func TestUnwrapChain(t *testing.T) {
	t.Parallel()

	sentinel := stderrors.New("record missing")
	wrapped := fmt.Errorf("lookup failed: %w", sentinel)
	err := New(wrapped).Category(CategoryNotFound).Build()

	assert.True(t, Is(err, sentinel))

	var ee *EnhancedError
	require.True(t, As(error(err), &ee))
	assert.Equal(t, CategoryNotFound, ee.Category)
}

func TestCategoryMatching(t *testing.T) {
	t.Parallel()

	a := Newf("first").Category(CategoryState).Build()
	b := Newf("second").Category(CategoryState).Build()
	c := Newf("third").Category(CategoryDatabase).Build()

	assert.True(t, stderrors.Is(a, b), "same category should match")
	assert.False(t, stderrors.Is(a, c), "different category should not match")
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"enhanced", Newf("x").Category(CategoryImport).Build(), CategoryImport},
		{"wrapped enhanced", fmt.Errorf("outer: %w", Newf("x").Category(CategoryValidation).Build()), CategoryValidation},
		{"plain", stderrors.New("plain"), CategoryGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CategoryOf(tt.err))
			assert.True(t, HasCategory(tt.err, tt.want))
		})
	}
}

func TestContextCopyIsolation(t *testing.T) {
	t.Parallel()

	err := Newf("x").Context("row", 3).Build()
	ctx := err.GetContext()
	ctx["row"] = 99
	assert.Equal(t, 3, err.Context["row"])
}
