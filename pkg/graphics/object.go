package graphics

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// BuildError is returned when the driver rejects a shader or a program.
// Log keeps the driver-provided diagnostic and is never empty.
type BuildError struct {
	Stage string
	Log   string
}

func (e *BuildError) Error() string { return fmt.Sprintf("%v failed: %v", e.Stage, e.Log) }

const noInfoLog = "no diagnostics from the driver"

// objectInfo queries the state of a GL object,
// i.e. glGetShaderiv/glGetShaderInfoLog for shaders.
type objectInfo struct {
	getiv   func(id uint32, pname uint32, params *int32)
	infoLog func(id uint32, bufSize int32, length *int32, infoLog *uint8)
}

var (
	shaderInfo  = objectInfo{getiv: gl.GetShaderiv, infoLog: gl.GetShaderInfoLog}
	programInfo = objectInfo{getiv: gl.GetProgramiv, infoLog: gl.GetProgramInfoLog}
)

// check reads the status flag of the object and in case of failure
// returns the info log of that object.
func (o objectInfo) check(id uint32, status uint32, stage string) error {
	var ok int32 = -1
	o.getiv(id, status, &ok)
	if ok == gl.TRUE {
		return nil
	}
	log := o.log(id)
	if log == "" {
		log = noInfoLog
		if ok == -1 {
			log = fmt.Sprintf("status 0x%X of object %v is unknown", status, id)
		}
	}
	return &BuildError{Stage: stage, Log: log}
}

func (o objectInfo) log(id uint32) string {
	var size int32
	o.getiv(id, gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	var n int32
	o.infoLog(id, size, &n, &buf[0])
	if n <= 0 || n > size {
		n = size
	}
	return strings.TrimRight(string(buf[:n]), "\x00\r\n\t ")
}
