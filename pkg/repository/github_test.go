package repository_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/oakmoss-dev/ghrecap/pkg/domain/types"
	"github.com/oakmoss-dev/ghrecap/pkg/repository"
)

func TestParseClosingRefs(t *testing.T) {
	t.Run("recognizes closing keywords", func(t *testing.T) {
		refs := repository.ParseClosingRefs("Closes #40 and fixes #12, also resolves #7")
		gt.A(t, refs).Length(3)
		gt.Equal(t, refs[0], types.ItemNumber(40))
		gt.Equal(t, refs[1], types.ItemNumber(12))
		gt.Equal(t, refs[2], types.ItemNumber(7))
	})

	t.Run("case insensitive", func(t *testing.T) {
		refs := repository.ParseClosingRefs("FIXED #3\ncLoSeS #4")
		gt.A(t, refs).Length(2)
	})

	t.Run("past tense forms", func(t *testing.T) {
		refs := repository.ParseClosingRefs("closed #1, fixed #2, resolved #3")
		gt.A(t, refs).Length(3)
	})

	t.Run("plain references are not closing links", func(t *testing.T) {
		refs := repository.ParseClosingRefs("see #40, related to #12")
		gt.A(t, refs).Length(0)
	})

	t.Run("deduplicates repeated references", func(t *testing.T) {
		refs := repository.ParseClosingRefs("closes #40, closes #40")
		gt.A(t, refs).Length(1)
	})

	t.Run("keyword without number is ignored", func(t *testing.T) {
		refs := repository.ParseClosingRefs("this closes the door")
		gt.A(t, refs).Length(0)
	})

	t.Run("empty body", func(t *testing.T) {
		gt.A(t, repository.ParseClosingRefs("")).Length(0)
	})
}
