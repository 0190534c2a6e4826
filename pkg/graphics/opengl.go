package graphics

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type DriverInfo struct {
	Version  string
	Vendor   string
	Renderer string
	GLSL     string
}

func initContext(getProcAddr func(name string) unsafe.Pointer) error {
	if err := gl.InitWithProcAddrFunc(getProcAddr); err != nil {
		return err
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	return nil
}

// GetDriverInfo returns OpenGL information.
// The Renderer is often the name of the GPU.
// In the case of Mesa3d, it would be i.e "Gallium 0.4 on NVA8".
func GetDriverInfo() DriverInfo {
	return DriverInfo{
		Version:  get(gl.VERSION),
		Vendor:   get(gl.VENDOR),
		Renderer: get(gl.RENDERER),
		GLSL:     get(gl.SHADING_LANGUAGE_VERSION),
	}
}

func SetViewport(w, h int32) { gl.Viewport(0, 0, w, h) }

// Viewport returns the current viewport as x, y, width, height.
func Viewport() (v [4]int32) {
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return
}

func SetClearColor(c mgl32.Vec4) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

// Clear clears the color buffer with the clear color.
func Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

// ReadPixels reads RGBA8 pixels of the current read buffer.
// Rows go bottom-up as GL has its origin in the lower left corner.
func ReadPixels(w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bad read size: %vx%v", w, h)
	}
	data := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&data[0]))
	if err := glError(); err != nil {
		return nil, err
	}
	return data, nil
}

func glError() error {
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error: 0x%X", e)
	}
	return nil
}

func get(name uint32) string { return gl.GoStr(gl.GetString(name)) }
