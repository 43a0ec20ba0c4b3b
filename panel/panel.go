// Package panel is an in-memory control panel: it owns the control values,
// the folder layout the exposure controller toggles, and a keyboard cursor for
// editing values without a widget toolkit.
package panel

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/richinsley/goicoshader/params"
)

type folderState struct {
	present bool
	open    bool
}

// Panel implements params.Panel.
type Panel struct {
	values  params.Values
	folders [folderCount]folderState
	// amplitudes is the number of entries in the octave amplitude folder.
	amplitudes int

	vertexNames   []string
	fragmentNames []string
	limits        [controlCount]Spec

	cursor Control

	// OnRefresh, when set, receives the panel summary after Refresh.
	OnRefresh func(summary string)
	refreshes int
}

// New builds a panel over initial values. The shader controls range over the
// given catalog names.
func New(initial params.Values, vertexNames, fragmentNames []string) *Panel {
	p := &Panel{
		values:        initial,
		vertexNames:   vertexNames,
		fragmentNames: fragmentNames,
		limits:        specs,
	}
	p.limits[VertexShader].Max = float64(len(vertexNames) - 1)
	p.limits[FragmentShader].Max = float64(len(fragmentNames) - 1)
	p.folders[FolderRoot] = folderState{present: true, open: true}
	p.folders[FolderScale] = folderState{present: true}
	p.cursor = VertexShader
	return p
}

// Values returns a snapshot of every control.
func (p *Panel) Values() params.Values {
	return p.values
}

func (p *Panel) Spec(c Control) Spec {
	return p.limits[c]
}

// Get returns the current value of c.
func (p *Panel) Get(c Control) float64 {
	return get(&p.values, c)
}

// Set clamps x to the control's range, snaps it to the step and stores it.
func (p *Panel) Set(c Control, x float64) {
	s := p.limits[c]
	x = math.Max(s.Min, math.Min(s.Max, x))
	if s.Step > 0 {
		x = s.Min + math.Round((x-s.Min)/s.Step)*s.Step
	}
	put(&p.values, c, x)
}

// Step moves c by n steps.
func (p *Panel) Step(c Control, n int) {
	p.Set(c, p.Get(c)+float64(n)*p.limits[c].Step)
}

// SetVertexShader writes a resolved selection back without range snapping.
func (p *Panel) SetVertexShader(i int) { p.values.VertexShader = i }

func (p *Panel) SetFragmentShader(i int) { p.values.FragmentShader = i }

func (p *Panel) AddGroup(g params.Group) {
	f := folderOf(g)
	p.folders[f].present = true
	log.Printf("panel: added folder %q", f)
}

func (p *Panel) RemoveGroup(g params.Group) {
	f := folderOf(g)
	p.folders[f].present = false
	log.Printf("panel: removed folder %q", f)
}

func (p *Panel) AddAmplitudes(count int, open bool) {
	p.folders[FolderAmplitudes] = folderState{present: true, open: open}
	p.amplitudes = count
}

func (p *Panel) RemoveAmplitudes() bool {
	open := p.folders[FolderAmplitudes].open
	p.folders[FolderAmplitudes] = folderState{}
	p.amplitudes = 0
	return open
}

// AmplitudeCount is the number of octave amplitude controls currently shown.
func (p *Panel) AmplitudeCount() int {
	if !p.folders[FolderAmplitudes].present {
		return 0
	}
	return p.amplitudes
}

func (p *Panel) HasFolder(f Folder) bool {
	return p.folders[f].present
}

func (p *Panel) IsOpen(f Folder) bool {
	return p.folders[f].present && p.folders[f].open
}

func (p *Panel) SetOpen(f Folder, open bool) {
	if p.folders[f].present {
		p.folders[f].open = open
	}
}

// Shown reports whether c is in a present folder and within the amplitude count.
func (p *Panel) Shown(c Control) bool {
	s := p.limits[c]
	if !p.folders[s.Folder].present {
		return false
	}
	if s.Folder == FolderAmplitudes && !p.folders[FolderPlanet].present {
		return false
	}
	if i, ok := c.amplitude(); ok && i >= p.amplitudes {
		return false
	}
	return true
}

// Navigable lists the shown controls whose folder is open, in panel order.
func (p *Panel) Navigable() []Control {
	var out []Control
	for c := Control(0); c < controlCount; c++ {
		if p.Shown(c) && p.folders[p.limits[c].Folder].open {
			out = append(out, c)
		}
	}
	return out
}

func (p *Panel) Cursor() Control {
	return p.cursor
}

// MoveCursor advances the cursor by n over the navigable controls, wrapping.
func (p *Panel) MoveCursor(n int) {
	nav := p.Navigable()
	if len(nav) == 0 {
		return
	}
	at := 0
	for i, c := range nav {
		if c == p.cursor {
			at = i
			break
		}
	}
	at = ((at+n)%len(nav) + len(nav)) % len(nav)
	p.cursor = nav[at]
}

// StepCursor steps the control under the cursor.
func (p *Panel) StepCursor(n int) {
	if !p.Shown(p.cursor) {
		p.MoveCursor(0)
	}
	p.Step(p.cursor, n)
	p.Refresh()
}

// ToggleFolder flips the open state of the n-th present collapsible folder.
func (p *Panel) ToggleFolder(n int) {
	i := 0
	for f := FolderScale; f < folderCount; f++ {
		if !p.folders[f].present {
			continue
		}
		if i == n {
			p.folders[f].open = !p.folders[f].open
			if !p.Shown(p.cursor) || !p.folders[p.limits[p.cursor].Folder].open {
				p.cursor = VertexShader
			}
			p.Refresh()
			return
		}
		i++
	}
}

// Refresh re-renders the summary after values were changed programmatically.
func (p *Panel) Refresh() {
	p.refreshes++
	if p.OnRefresh != nil {
		p.OnRefresh(p.Summary())
	}
}

// Refreshes counts Refresh calls.
func (p *Panel) Refreshes() int {
	return p.refreshes
}

func (p *Panel) label(c Control) string {
	v := p.Get(c)
	switch c {
	case VertexShader:
		return nameAt(p.vertexNames, int(v))
	case FragmentShader:
		return nameAt(p.fragmentNames, int(v))
	}
	if p.limits[c].Step < 1 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%d", int(v))
}

func nameAt(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("#%d", i)
	}
	return names[i]
}

// Summary is a one-line description of the pair, the visible folders and the
// control under the cursor.
func (p *Panel) Summary() string {
	var folders []string
	for f := FolderScale; f < folderCount; f++ {
		if !p.folders[f].present {
			continue
		}
		mark := "+"
		if p.folders[f].open {
			mark = "-"
		}
		folders = append(folders, mark+f.String())
	}
	return fmt.Sprintf("%s / %s | %s | [%s = %s]",
		p.label(VertexShader), p.label(FragmentShader),
		strings.Join(folders, " "),
		p.cursor, p.label(p.cursor))
}
