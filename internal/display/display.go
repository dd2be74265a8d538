// Package display shows a rendered framebuffer in an OpenGL window: the
// buffer is uploaded into a texture and drawn as a fullscreen quad. Key
// bindings re-render with different tracer settings.
package display

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/user/raytracer/internal/engine"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

const vertexShaderSrc = `#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 TexCoord;
void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
}`

const fragmentShaderSrc = `#version 330 core
in vec2 TexCoord;
out vec4 FragColor;
uniform sampler2D rayTracedTexture;
void main() {
    FragColor = texture(rayTracedTexture, TexCoord);
}`

// Run opens a window sized to the tracer's framebuffer, renders, and loops
// until the window closes. Controls: S toggles shadows, R reflections,
// Up/Down adjust recursion depth, Esc quits. Must be called from the main
// goroutine.
func Run(rt *engine.RayTracer, title string) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	width, height := rt.Framebuffer().Size()
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	program, err := newProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(program)

	// Fullscreen quad; texture v is flipped so framebuffer row 0 lands at
	// the top of the window.
	quadVertices := []float32{
		// positions // texcoords
		-1, 1, 0, 0,
		-1, -1, 0, 1,
		1, -1, 1, 1,

		-1, 1, 0, 0,
		1, -1, 1, 1,
		1, 1, 1, 0,
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	defer gl.DeleteVertexArrays(1, &vao)
	defer gl.DeleteBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.BindVertexArray(0)

	var texture uint32
	gl.GenTextures(1, &texture)
	defer gl.DeleteTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	upload := func() {
		img := rt.Framebuffer().Image()
		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	needsRender := true
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyS:
			rt.EnableShadows(!rt.ShadowsEnabled())
			log.Printf("display: shadows=%v", rt.ShadowsEnabled())
			needsRender = true
		case glfw.KeyR:
			rt.EnableReflections(!rt.ReflectionsEnabled())
			log.Printf("display: reflections=%v", rt.ReflectionsEnabled())
			needsRender = true
		case glfw.KeyUp:
			rt.SetMaxDepth(rt.MaxDepth() + 1)
			log.Printf("display: depth=%d", rt.MaxDepth())
			needsRender = true
		case glfw.KeyDown:
			rt.SetMaxDepth(rt.MaxDepth() - 1)
			log.Printf("display: depth=%d", rt.MaxDepth())
			needsRender = true
		}
	})

	texUniform := gl.GetUniformLocation(program, gl.Str("rayTracedTexture\x00"))

	for !window.ShouldClose() {
		if needsRender {
			needsRender = false
			start := time.Now()
			rt.Render()
			upload()
			log.Printf("display: rendered %dx%d in %v", width, height, time.Since(start).Round(time.Millisecond))
		}

		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		gl.UseProgram(program)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.Uniform1i(texUniform, 0)

		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.BindVertexArray(0)

		window.SwapBuffers()
		glfw.WaitEvents()
	}
	return nil
}

func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertex, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertex)

	fragment, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragment)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &infoLog[0])
		return 0, fmt.Errorf("link program: %s", string(infoLog))
	}
	return program, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &infoLog[0])
		return 0, fmt.Errorf("shader compile: %s", string(infoLog))
	}
	return shader, nil
}
