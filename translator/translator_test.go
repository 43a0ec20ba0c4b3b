package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	gst "github.com/richinsley/goshadertranslator"
)

func TestMappedName(t *testing.T) {
	tr := &Translated{Variables: map[string]gst.ShaderVariable{
		"u_Color":      {MappedName: "_uu_Color"},
		"u_OctaveAmps": {MappedName: "_uu_OctaveAmps"},
	}}

	got, ok := tr.MappedName("u_Color")
	assert.True(t, ok)
	assert.Equal(t, "_uu_Color", got)

	got, ok = tr.MappedName("u_OctaveAmps[0]")
	assert.True(t, ok)
	assert.Equal(t, "_uu_OctaveAmps[0]", got)

	_, ok = tr.MappedName("u_Missing")
	assert.False(t, ok)
}
