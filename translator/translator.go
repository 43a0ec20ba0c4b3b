// Package translator converts the demo's GLSL ES 3.00 sources to the dialect
// of the desktop GL context.
package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// Get returns the process-wide translator, starting it on first use.
func Get() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Stage source as handed to the translator.
const (
	Vertex   = "vertex"
	Fragment = "fragment"
)

// Translated is a shader ready for the GPU plus the names the translator gave
// its variables.
type Translated struct {
	Code      string
	Variables map[string]gst.ShaderVariable
}

// Translate converts src for the given stage to GLSL 4.10, or to ESSL when es
// is set.
func Translate(src, stage string, es bool) (*Translated, error) {
	t, err := Get()
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	format := gst.OutputFormatGLSL410
	if es {
		format = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(src, stage, gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	return &Translated{Code: out.Code, Variables: out.Variables}, nil
}

// MappedName resolves a source-level variable name to its translated name.
// Array element names like "u_Amps[0]" map through their base name.
func (t *Translated) MappedName(name string) (string, bool) {
	base, suffix := name, ""
	if i := strings.IndexByte(name, '['); i >= 0 {
		base, suffix = name[:i], name[i:]
	}
	v, ok := t.Variables[base]
	if !ok {
		return "", false
	}
	return v.MappedName + suffix, true
}
