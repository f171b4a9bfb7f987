package overlay

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"solarsystem/rendering/opengl/shaders"
)

// Monospace font atlas approach: every printable ASCII glyph of basicfont's
// 7x13 face is rasterised once into a single-row alpha texture.

const bitmapFontVertexShader = `
#version 410 core

layout (location = 0) in vec2 position;
layout (location = 1) in vec2 texCoord;

out vec2 fragTexCoord;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(position, 0.0, 1.0);
    fragTexCoord = texCoord;
}
`

const bitmapFontFragmentShader = `
#version 410 core

in vec2 fragTexCoord;
out vec4 outColor;

uniform sampler2D fontTexture;
uniform vec4 textColor;

void main() {
    float alpha = texture(fontTexture, fragTexCoord).r;
    outColor = vec4(textColor.rgb, textColor.a * alpha);
}
`

const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	fallbackRune = '?'
)

// Atlas is a rasterised glyph strip
type Atlas struct {
	Image   *image.Alpha
	Advance int // Glyph cell width in pixels
	Height  int // Glyph cell height in pixels
}

// NewAtlas rasterises the printable ASCII range of basicfont.Face7x13
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	count := int(lastGlyph-firstGlyph) + 1
	a := &Atlas{
		Image:   image.NewAlpha(image.Rect(0, 0, count*face.Advance, face.Height)),
		Advance: face.Advance,
		Height:  face.Height,
	}
	d := font.Drawer{Dst: a.Image, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		d.Dot = fixed.P(int(r-firstGlyph)*face.Advance, face.Ascent)
		d.DrawString(string(r))
	}
	return a
}

// Width returns the rendered width of text in pixels at the given scale
func (a *Atlas) Width(text string, scale float32) float32 {
	return float32(len([]rune(text))*a.Advance) * scale
}

// Layout returns triangles for text with its top-left corner at (x, y).
// Each vertex is x, y, u, v; spaces advance without emitting quads.
func (a *Atlas) Layout(x, y float32, text string, scale float32) []float32 {
	w := float32(a.Image.Bounds().Dx())
	cw := float32(a.Advance) * scale
	ch := float32(a.Height) * scale

	verts := make([]float32, 0, len(text)*24)
	for _, r := range text {
		if r < firstGlyph || r > lastGlyph {
			r = fallbackRune
		}
		if r != ' ' {
			u0 := float32(int(r-firstGlyph)*a.Advance) / w
			u1 := u0 + float32(a.Advance)/w
			verts = append(verts,
				x, y, u0, 0,
				x+cw, y, u1, 0,
				x, y+ch, u0, 1,
				x+cw, y, u1, 0,
				x+cw, y+ch, u1, 1,
				x, y+ch, u0, 1,
			)
		}
		x += cw
	}
	return verts
}

// TextRenderer draws atlas text in window pixel coordinates
type TextRenderer struct {
	atlas   *Atlas
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	width, height float32
}

// NewTextRenderer uploads the font atlas and compiles the text shader
func NewTextRenderer(width, height int) (*TextRenderer, error) {
	program, err := shaders.NewProgram(bitmapFontVertexShader, bitmapFontFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to compile text shaders: %w", err)
	}

	tr := &TextRenderer{
		atlas:   NewAtlas(),
		program: program,
		width:   float32(width),
		height:  float32(height),
	}

	gl.GenTextures(1, &tr.texture)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	b := tr.atlas.Image.Bounds()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(tr.atlas.Image.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)

	// Each vertex has 4 floats: 2 for position, 2 for texcoord
	stride := int32(4 * 4)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return tr, nil
}

// Atlas returns the glyph atlas used for layout
func (tr *TextRenderer) Atlas() *Atlas { return tr.atlas }

// SetSize updates the pixel projection
func (tr *TextRenderer) SetSize(width, height int) {
	tr.width = float32(width)
	tr.height = float32(height)
}

// Draw renders text with its top-left corner at (x, y). Blending must be enabled.
func (tr *TextRenderer) Draw(x, y float32, text string, scale float32, color mgl32.Vec4) {
	verts := tr.atlas.Layout(x, y, text, scale)
	if len(verts) == 0 {
		return
	}

	gl.UseProgram(tr.program)
	projection := mgl32.Ortho2D(0, tr.width, tr.height, 0)
	gl.UniformMatrix4fv(shaders.Uniform(tr.program, "projection"), 1, false, &projection[0])
	gl.Uniform4fv(shaders.Uniform(tr.program, "textColor"), 1, &color[0])
	gl.Uniform1i(shaders.Uniform(tr.program, "fontTexture"), 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))
	gl.BindVertexArray(0)
}

// Release cleans up resources
func (tr *TextRenderer) Release() {
	gl.DeleteProgram(tr.program)
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteTextures(1, &tr.texture)
}
