package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type ShaderKind uint32

const (
	Vertex   ShaderKind = gl.VERTEX_SHADER
	Fragment ShaderKind = gl.FRAGMENT_SHADER
)

func (k ShaderKind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("shader(0x%X)", uint32(k))
	}
}

// Shader is a compiled GL shader object.
type Shader struct {
	id uint32
}

// NewShader compiles the source code of the given kind.
// A shader that fails to compile is deleted and its log is returned
// as a *BuildError.
func NewShader(kind ShaderKind, source string) (*Shader, error) {
	id := gl.CreateShader(uint32(kind))
	if id == 0 {
		return nil, fmt.Errorf("create %v shader: %w", kind, glError())
	}

	src, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(id, 1, src, &size)
	free()
	gl.CompileShader(id)

	if err := shaderInfo.check(id, gl.COMPILE_STATUS, kind.String()+" shader compile"); err != nil {
		gl.DeleteShader(id)
		return nil, err
	}
	return &Shader{id: id}, nil
}

func VertexShader(source string) (*Shader, error)   { return NewShader(Vertex, source) }
func FragmentShader(source string) (*Shader, error) { return NewShader(Fragment, source) }

func (s *Shader) ID() uint32 { return s.id }

// Delete flags the shader for deletion, it's safe to call it more than once.
func (s *Shader) Delete() {
	if s == nil || s.id == 0 {
		return
	}
	gl.DeleteShader(s.id)
	s.id = 0
}
