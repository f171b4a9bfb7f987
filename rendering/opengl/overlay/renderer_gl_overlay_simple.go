package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/rendering/opengl/shaders"
)

// RectShader draws solid rectangles in window pixel coordinates
type RectShader struct {
	Program uint32
	VAO     uint32

	width, height float32
}

// Simple overlay shader for colored rectangles
const overlayVertexShader = `
#version 410 core

const vec2 positions[4] = vec2[](
    vec2(0.0, 0.0),
    vec2(1.0, 0.0),
    vec2(0.0, 1.0),
    vec2(1.0, 1.0)
);

uniform vec2 offset;
uniform vec2 size;
uniform vec2 screenSize;

void main() {
    vec2 pos = positions[gl_VertexID];
    vec2 pixelPos = offset + pos * size;
    vec2 ndcPos = (pixelPos / screenSize) * 2.0 - 1.0;
    ndcPos.y = -ndcPos.y; // Flip Y for top-left origin
    gl_Position = vec4(ndcPos, 0.0, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core

uniform vec4 color;
out vec4 outColor;

void main() {
    outColor = color;
}
`

// NewRectShader creates and initializes a rectangle shader
func NewRectShader(width, height int) (*RectShader, error) {
	program, err := shaders.NewProgram(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to compile overlay shaders: %w", err)
	}
	rs := &RectShader{Program: program, width: float32(width), height: float32(height)}

	// Vertices come from gl_VertexID, but core profile still needs a VAO bound
	gl.GenVertexArrays(1, &rs.VAO)
	return rs, nil
}

// SetSize updates the screen size used for pixel to NDC mapping
func (rs *RectShader) SetSize(width, height int) {
	rs.width = float32(width)
	rs.height = float32(height)
}

// Draw fills a rectangle. Blending must be enabled for translucent colors.
func (rs *RectShader) Draw(x, y, w, h float32, color mgl32.Vec4) {
	gl.UseProgram(rs.Program)
	gl.Uniform2f(shaders.Uniform(rs.Program, "offset"), x, y)
	gl.Uniform2f(shaders.Uniform(rs.Program, "size"), w, h)
	gl.Uniform2f(shaders.Uniform(rs.Program, "screenSize"), rs.width, rs.height)
	gl.Uniform4fv(shaders.Uniform(rs.Program, "color"), 1, &color[0])

	gl.BindVertexArray(rs.VAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Release cleans up resources
func (rs *RectShader) Release() {
	gl.DeleteProgram(rs.Program)
	gl.DeleteVertexArrays(1, &rs.VAO)
}
