package program

import "github.com/richinsley/goicoshader/graphics"

// Uniform names a semantic uniform the demo may set on any program.
type Uniform int

const (
	Model Uniform = iota
	ModelInvTr
	ViewProj
	Color
	VertTime
	FragTime
	Octaves
	Fractal
	CamPos
	ElevationParams
	OctaveAmps
	uniformCount
)

var uniformNames = [uniformCount]string{
	Model:           "u_Model",
	ModelInvTr:      "u_ModelInvTr",
	ViewProj:        "u_ViewProj",
	Color:           "u_Color",
	VertTime:        "u_VertTime",
	FragTime:        "u_FragTime",
	Octaves:         "u_Octaves",
	Fractal:         "u_Fractal",
	CamPos:          "u_CamPos",
	ElevationParams: "u_ElevationParams",
	OctaveAmps:      "u_OctaveAmps",
}

// arrays are looked up as "name[0]" first, then by their bare name.
var arrays = map[Uniform]bool{
	ElevationParams: true,
	OctaveAmps:      true,
}

func (u Uniform) String() string {
	if u < 0 || u >= uniformCount {
		return "u_unknown"
	}
	return uniformNames[u]
}

// Slot is a resolved location or the absent sentinel.
type Slot struct {
	loc     int32
	present bool
}

// Absent is the slot of a name the program does not declare.
var Absent = Slot{loc: -1}

func slotAt(loc int32) Slot {
	if loc < 0 {
		return Absent
	}
	return Slot{loc: loc, present: true}
}

func (s Slot) Present() bool { return s.present }

// Active remembers the bound program so that redundant binds are elided. One
// Active is shared by every Program driven from the same GL context.
type Active struct {
	current graphics.Program
}

func (a *Active) Use(gpu graphics.Backend, p graphics.Program) {
	if a.current == p {
		return
	}
	gpu.UseProgram(p)
	a.current = p
}

func (a *Active) Current() graphics.Program {
	return a.current
}

// Forget clears the record if p is the bound program, so a deleted handle
// that the driver reuses is bound again.
func (a *Active) Forget(p graphics.Program) {
	if a.current == p {
		a.current = graphics.NoProgram
	}
}
