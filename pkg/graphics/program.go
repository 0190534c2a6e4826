package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked GL shader program.
type Program struct {
	id uint32
}

// NewProgram links compiled shaders into a program.
// The shaders are detached after linking and can be deleted by the caller.
func NewProgram(shaders ...*Shader) (*Program, error) {
	if len(shaders) == 0 {
		return nil, errors.New("no shaders to link")
	}
	for _, s := range shaders {
		if s == nil || s.ID() == 0 {
			return nil, errors.New("program needs compiled shaders")
		}
	}

	id := gl.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("create program: %w", glError())
	}
	for _, s := range shaders {
		gl.AttachShader(id, s.ID())
	}
	gl.LinkProgram(id)

	err := programInfo.check(id, gl.LINK_STATUS, "program link")
	for _, s := range shaders {
		gl.DetachShader(id, s.ID())
	}
	if err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	return &Program{id: id}, nil
}

// BuildProgram compiles the vertex and fragment sources and links them.
func BuildProgram(vertex, fragment string) (*Program, error) {
	vs, err := VertexShader(vertex)
	if err != nil {
		return nil, err
	}
	defer vs.Delete()

	fs, err := FragmentShader(fragment)
	if err != nil {
		return nil, err
	}
	defer fs.Delete()

	return NewProgram(vs, fs)
}

func (p *Program) ID() uint32 { return p.id }

// Use installs the program as a part of the current rendering state.
func (p *Program) Use() { gl.UseProgram(p.id) }

func (p *Program) Delete() {
	if p == nil || p.id == 0 {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
}
