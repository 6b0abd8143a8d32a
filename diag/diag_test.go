package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rifhice/paxada/diag"
)

func TestCollector_WarnfAndList(t *testing.T) {
	c := &diag.Collector{}
	c.Warnf(diag.CodeRefInAllOf, "", "ref %q in allOf is not supported", "User")
	c.Infof(diag.CodeDocument, "body.extra", "ignored key")

	l := c.List()
	assert.Len(t, l, 2)
	assert.True(t, l.HasWarnings())
	assert.Equal(t, []string{`ref_in_allof: ref "User" in allOf is not supported`}, l.Warnings())
	assert.Equal(t, []diag.Code{diag.CodeRefInAllOf, diag.CodeDocument}, l.Codes())
	assert.Equal(t, "document at body.extra: ignored key", l[1].String())
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *diag.Collector
	c.Warnf(diag.CodeRefInAllOf, "", "dropped")
	c.Merge(diag.List{{Code: diag.CodeDocument}})
	assert.Nil(t, c.List())
}

func TestCollector_ListIsACopy(t *testing.T) {
	c := &diag.Collector{}
	c.Warnf(diag.CodeRefInValidators, "a", "x")
	l := c.List()
	l[0].Path = "changed"
	assert.Equal(t, "a", c.List()[0].Path)
}

func TestList_InfoOnlyHasNoWarnings(t *testing.T) {
	l := diag.List{{Severity: diag.Info, Code: diag.CodeDocument}}
	assert.False(t, l.HasWarnings())
	assert.Empty(t, l.Warnings())
}

func TestList_Within(t *testing.T) {
	l := diag.List{{Path: ""}, {Path: "allOf[0]"}}
	got := l.Within("body")
	assert.Equal(t, "body", got[0].Path)
	assert.Equal(t, "body.allOf[0]", got[1].Path)
	assert.Equal(t, "", l[0].Path)
	assert.Nil(t, diag.List(nil).Within("x"))
}
