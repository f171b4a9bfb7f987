package opengl

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/assets"
	"solarsystem/core"
	"solarsystem/rendering/opengl/overlay"
	"solarsystem/rendering/opengl/shaders"
)

const (
	sphereSegments = 64
	sphereRings    = 32
	floatSize      = 4
	meshStride     = 8 * floatSize

	ambientLight = 0.3
	starScale    = 400.0
)

var (
	sunColor   = mgl32.Vec4{1.0, 0.8, 0.2, 1.0}
	orbitColor = mgl32.Vec4{1, 1, 1, 0.5}
	clearColor = mgl32.Vec4{0, 0, 0, 1}
)

// WindowOptions configures the viewer window
type WindowOptions struct {
	Width, Height int
	Title         string
	VSync         bool
}

// mesh is an indexed triangle buffer in the position/normal/texcoord layout
type mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// lineStrip is a non-indexed position buffer
type lineStrip struct {
	vao, vbo uint32
	count    int32
}

// Renderer draws a World into a GLFW window
type Renderer struct {
	window *glfw.Window
	world  *core.World

	meshProgram     uint32
	lineProgram     uint32
	pointProgram    uint32
	backdropProgram uint32
	backdropVAO     uint32

	sphere mesh
	rings  map[string]mesh
	orbits []lineStrip

	starVAO      uint32
	starVBOs     [3]uint32 // position, size, alpha
	starCount    int32
	textures     map[string]uint32
	fbW, fbH     int32
	labels       *overlay.LabelOverlay
	statsOverlay *overlay.StatsOverlay
	showStats    bool

	input inputState
}

// NewRenderer opens the window, compiles the programs and uploads the
// static geometry of w's scene. Call from the main thread.
func NewRenderer(opts WindowOptions, w *core.World) (*Renderer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Println("OpenGL version:", gl.GoStr(gl.GetString(gl.VERSION)))

	r := &Renderer{
		window:    window,
		world:     w,
		rings:     make(map[string]mesh),
		textures:  make(map[string]uint32),
		showStats: true,
	}
	if err := r.init(); err != nil {
		r.Terminate()
		return nil, err
	}

	width, height := window.GetSize()
	labels, err := overlay.NewLabelOverlay(width, height)
	if err != nil {
		r.Terminate()
		return nil, fmt.Errorf("failed to create label overlay: %w", err)
	}
	r.labels = labels
	r.statsOverlay = overlay.NewStatsOverlay(labels)

	w.AddSurface(r)
	w.AddSurface(labels)
	w.Resize(width, height)

	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		r.world.Resize(width, height)
	})
	window.SetFramebufferSizeCallback(r.onFramebufferSize)
	window.SetKeyCallback(r.onKey)
	window.SetMouseButtonCallback(r.onMouseButton)
	window.SetCursorPosCallback(r.onCursorPos)
	window.SetScrollCallback(r.onScroll)

	return r, nil
}

func (r *Renderer) init() error {
	var err error
	if r.meshProgram, err = shaders.NewMeshProgram(); err != nil {
		return fmt.Errorf("mesh shader: %w", err)
	}
	if r.lineProgram, err = shaders.NewLineProgram(); err != nil {
		return fmt.Errorf("line shader: %w", err)
	}
	if r.pointProgram, err = shaders.NewPointProgram(); err != nil {
		return fmt.Errorf("point shader: %w", err)
	}
	if r.backdropProgram, err = shaders.NewBackdropProgram(); err != nil {
		return fmt.Errorf("backdrop shader: %w", err)
	}
	gl.GenVertexArrays(1, &r.backdropVAO)

	r.sphere = newMesh(core.GenerateSphereData(1, sphereSegments, sphereRings))

	scene := r.world.Scene
	for _, b := range scene.Bodies {
		if b.Ring != nil {
			r.rings[b.Name] = newMesh(core.GenerateRingData(float32(b.Ring.Inner), float32(b.Ring.Outer), core.RingSegments))
		}
	}
	for _, o := range scene.Orbits {
		r.orbits = append(r.orbits, newLineStrip(core.FlattenPoints(o.Points)))
	}
	r.createStars(scene.Stars)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	return nil
}

func newMesh(vertices []float32, indices []uint32) mesh {
	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, meshStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, meshStride, 3*floatSize)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, meshStride, 6*floatSize)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	m.count = int32(len(indices))
	return m
}

func newLineStrip(points []float32) lineStrip {
	var l lineStrip
	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(points)*floatSize, gl.Ptr(points), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*floatSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	l.count = int32(len(points) / 3)
	return l
}

func (r *Renderer) createStars(sf *core.StarField) {
	r.starCount = int32(sf.Count())
	gl.GenVertexArrays(1, &r.starVAO)
	gl.BindVertexArray(r.starVAO)
	gl.GenBuffers(3, &r.starVBOs[0])

	attribs := []struct {
		data  []float32
		size  int32
		usage uint32
	}{
		{sf.Positions, 3, gl.STATIC_DRAW},
		{sf.Sizes, 1, gl.STATIC_DRAW},
		{sf.Alpha, 1, gl.DYNAMIC_DRAW},
	}
	for i, a := range attribs {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.starVBOs[i])
		if len(a.data) > 0 {
			gl.BufferData(gl.ARRAY_BUFFER, len(a.data)*floatSize, gl.Ptr(a.data), a.usage)
		}
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, a.size*floatSize, 0)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)
}

// UploadTextures creates GL textures for newly ready assets. Failed assets
// are skipped and their objects keep drawing with a flat colour.
func (r *Renderer) UploadTextures(settled []*assets.Asset) {
	for _, a := range settled {
		if a.State != assets.Ready || a.Image == nil {
			continue
		}
		if _, ok := r.textures[a.Name]; ok {
			continue
		}
		img := a.Image
		var tex uint32
		gl.GenTextures(1, &tex)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
		gl.GenerateMipmap(gl.TEXTURE_2D)
		r.textures[a.Name] = tex
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// SetSize matches the GL viewport to the window's framebuffer
func (r *Renderer) SetSize(width, height int) {
	r.setViewport(r.window.GetFramebufferSize())
}

// setViewport applies a framebuffer size. The framebuffer can change without a
// window resize, e.g. when the window moves to a monitor with another scale.
func (r *Renderer) setViewport(fbWidth, fbHeight int) {
	w, h, ok := viewportSize(fbWidth, fbHeight)
	if !ok {
		return
	}
	r.fbW, r.fbH = w, h
	gl.Viewport(0, 0, w, h)
}

// viewportSize validates a framebuffer size; minimised windows report zero
func viewportSize(fbWidth, fbHeight int) (int32, int32, bool) {
	if fbWidth <= 0 || fbHeight <= 0 {
		return 0, 0, false
	}
	return int32(fbWidth), int32(fbHeight), true
}

// Render draws the scene: backdrop, stars, sun, planets, rings, orbit paths,
// then the overlay pass.
func (r *Renderer) Render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	scene := r.world.Scene
	cam := r.world.Camera
	viewProj := cam.ViewProjection()

	r.renderBackdrop()
	r.renderStars(scene.Stars, viewProj)

	view, proj := cam.View(), cam.Projection()
	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(shaders.Uniform(r.meshProgram, "view"), 1, false, &view[0])
	gl.UniformMatrix4fv(shaders.Uniform(r.meshProgram, "projection"), 1, false, &proj[0])
	gl.Uniform3f(shaders.Uniform(r.meshProgram, "lightPos"), 0, 0, 0)
	gl.Uniform1f(shaders.Uniform(r.meshProgram, "ambient"), ambientLight)
	gl.Uniform1i(shaders.Uniform(r.meshProgram, "diffuse"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(r.sphere.vao)
	r.drawMesh(r.sphere, scene.Sun.Model(), scene.Sun.Texture, sunColor, false)
	for _, b := range scene.Bodies {
		r.drawMesh(r.sphere, b.Model(), b.Texture, colorOf(b), true)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, b := range scene.Bodies {
		ring, ok := r.rings[b.Name]
		if !ok {
			continue
		}
		gl.BindVertexArray(ring.vao)
		fallback := colorOf(b)
		fallback[3] = 0.6
		r.drawMesh(ring, b.RingModel(), b.Ring.Texture, fallback, false)
	}

	r.renderOrbits(viewProj)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)

	r.renderOverlays()
}

func (r *Renderer) drawMesh(m mesh, model mgl32.Mat4, texture string, fallback mgl32.Vec4, lit bool) {
	gl.UniformMatrix4fv(shaders.Uniform(r.meshProgram, "model"), 1, false, &model[0])
	tex, ok := r.textures[texture]
	if ok {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.Uniform1i(shaders.Uniform(r.meshProgram, "useTexture"), 1)
	} else {
		gl.Uniform1i(shaders.Uniform(r.meshProgram, "useTexture"), 0)
	}
	gl.Uniform4fv(shaders.Uniform(r.meshProgram, "baseColor"), 1, &fallback[0])
	litFlag := int32(0)
	if lit {
		litFlag = 1
	}
	gl.Uniform1i(shaders.Uniform(r.meshProgram, "lit"), litFlag)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
}

func (r *Renderer) renderBackdrop() {
	tex, ok := r.textures[core.BackgroundTexture]
	if !ok {
		return
	}
	gl.DepthMask(false)
	gl.UseProgram(r.backdropProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(shaders.Uniform(r.backdropProgram, "background"), 0)
	gl.BindVertexArray(r.backdropVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.DepthMask(true)
}

func (r *Renderer) renderStars(sf *core.StarField, viewProj mgl32.Mat4) {
	if r.starCount == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.starVBOs[2])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(sf.Alpha)*floatSize, gl.Ptr(sf.Alpha))

	gl.UseProgram(r.pointProgram)
	gl.UniformMatrix4fv(shaders.Uniform(r.pointProgram, "viewProj"), 1, false, &viewProj[0])
	gl.Uniform1f(shaders.Uniform(r.pointProgram, "pointScale"), starScale)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DepthMask(false)
	gl.BindVertexArray(r.starVAO)
	gl.DrawArrays(gl.POINTS, 0, r.starCount)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.PROGRAM_POINT_SIZE)
}

func (r *Renderer) renderOrbits(viewProj mgl32.Mat4) {
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(shaders.Uniform(r.lineProgram, "viewProj"), 1, false, &viewProj[0])
	gl.Uniform4fv(shaders.Uniform(r.lineProgram, "color"), 1, &orbitColor[0])
	for _, o := range r.orbits {
		gl.BindVertexArray(o.vao)
		gl.DrawArrays(gl.LINE_STRIP, 0, o.count)
	}
}

func colorOf(b *core.Body) mgl32.Vec4 {
	c := b.Color
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), 1}
}

// ShouldClose returns true if the window should close
func (r *Renderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

// Close asks the window to close at the end of the frame
func (r *Renderer) Close() {
	r.window.SetShouldClose(true)
}

// PollEvents processes window events
func (r *Renderer) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the frame
func (r *Renderer) SwapBuffers() {
	r.window.SwapBuffers()
}

// Now returns milliseconds since the window was created
func (r *Renderer) Now() float64 {
	return glfw.GetTime() * 1000
}

// Terminate cleans up OpenGL resources
func (r *Renderer) Terminate() {
	if r.labels != nil {
		r.labels.Release()
	}
	for _, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
	}
	deleteMesh(r.sphere)
	for _, m := range r.rings {
		deleteMesh(m)
	}
	for _, o := range r.orbits {
		gl.DeleteVertexArrays(1, &o.vao)
		gl.DeleteBuffers(1, &o.vbo)
	}
	if r.starVAO != 0 {
		gl.DeleteVertexArrays(1, &r.starVAO)
		gl.DeleteBuffers(3, &r.starVBOs[0])
	}
	if r.backdropVAO != 0 {
		gl.DeleteVertexArrays(1, &r.backdropVAO)
	}
	for _, p := range []uint32{r.meshProgram, r.lineProgram, r.pointProgram, r.backdropProgram} {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
	r.window.Destroy()
	glfw.Terminate()
}

func deleteMesh(m mesh) {
	if m.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}
