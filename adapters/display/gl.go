package display

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	pathtracer "github.com/mirstar13/go-pathtracer"
)

func init() {
	// glfw/gl calls must stay on one OS thread for the life of the window.
	runtime.LockOSThread()
}

// GL presents frames by uploading the blended RGBA buffer as a texture
// and drawing it over a full-screen quad — the one thing a path
// tracer's display sink needs: present an already-shaded image.
type GL struct {
	window *glfw.Window
	width  int
	height int

	program uint32
	vao     uint32
	vbo     uint32
	texture uint32
	uvSize  int32
}

const quadVertexShader = `
#version 410
layout(location = 0) in vec2 position;
layout(location = 1) in vec2 texcoord;
out vec2 vTexcoord;
void main() {
    vTexcoord = texcoord;
    gl_Position = vec4(position, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `
#version 410
in vec2 vTexcoord;
out vec4 fragColor;
uniform sampler2D frame;
void main() {
    fragColor = texture(frame, vTexcoord);
}
` + "\x00"

var quadVertices = []float32{
	// pos        // uv
	-1, -1, 0, 1,
	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

func NewGL(width, height int, title string) (*GL, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing gl: %w", err)
	}

	g := &GL{window: window, width: width, height: height}
	if err := g.setup(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GL) setup() error {
	program, err := linkProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return err
	}
	g.program = program

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.GenTextures(1, &g.texture)
	gl.BindTexture(gl.TEXTURE_2D, g.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return nil
}

func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("linking program: %s", log)
	}

	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compiling shader: %s", log)
	}
	return shader, nil
}

func (g *GL) ScreenSize() (int, int) { return g.width, g.height }

func (g *GL) Present(scene, ui pathtracer.Image) error {
	merged := Blend(scene, ui)

	gl.BindTexture(gl.TEXTURE_2D, g.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(merged.Width), int32(merged.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(merged.Pixels))

	fbw, fbh := g.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(g.program)
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	g.window.SwapBuffers()
	glfw.PollEvents()

	if g.window.ShouldClose() {
		return errClosed
	}
	return nil
}

var errClosed = fmt.Errorf("display window closed")

// ErrClosed reports whether err signals that the user closed the window.
func ErrClosed(err error) bool { return err == errClosed }

func (g *GL) Close() error {
	glfw.Terminate()
	return nil
}

// Window exposes the underlying glfw window so cmd/pathtracer can
// attach key callbacks for camera/control input.
func (g *GL) Window() *glfw.Window { return g.window }
