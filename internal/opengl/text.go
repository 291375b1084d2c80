package opengl

import (
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"haunted-house/debug"
)

const textMargin = 8

// TextRenderer draws blocks of monospace text in the top-left corner. The
// block is rasterised on the CPU and cached as a texture until the text
// changes.
type TextRenderer struct {
	prog      uint32
	rectLoc   int32
	glyphsLoc int32
	vao       uint32

	tex    uint32
	texW   int
	texH   int
	cached string
}

func newTextRenderer() (*TextRenderer, error) {
	prog, err := newProgram(textVertSrc, textFragSrc)
	if err != nil {
		return nil, err
	}
	tr := &TextRenderer{
		prog:      prog,
		rectLoc:   gl.GetUniformLocation(prog, gl.Str("rect\x00")),
		glyphsLoc: gl.GetUniformLocation(prog, gl.Str("glyphs\x00")),
	}
	gl.GenVertexArrays(1, &tr.vao)
	gl.GenTextures(1, &tr.tex)
	return tr, nil
}

func (tr *TextRenderer) update(lines []string) {
	key := strings.Join(lines, "\n")
	if key == tr.cached {
		return
	}
	img := debug.Rasterize(lines)
	tr.texW, tr.texH = img.Bounds().Dx(), img.Bounds().Dy()
	tr.cached = key

	gl.BindTexture(gl.TEXTURE_2D, tr.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(tr.texW), int32(tr.texH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// draw renders lines at integer scale onto the bound framebuffer of the
// given pixel size.
func (tr *TextRenderer) draw(lines []string, screenW, screenH, scale int) {
	if len(lines) == 0 || screenW <= 0 || screenH <= 0 {
		return
	}
	tr.update(lines)

	x0 := float32(textMargin*scale) / float32(screenW)
	y0 := float32(textMargin*scale) / float32(screenH)
	w := float32(tr.texW*scale) / float32(screenW)
	h := float32(tr.texH*scale) / float32(screenH)
	left, top := -1+2*x0, 1-2*y0

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(tr.prog)
	gl.Uniform4f(tr.rectLoc, left, top-2*h, left+2*w, top)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.tex)
	gl.Uniform1i(tr.glyphsLoc, 0)
	gl.BindVertexArray(tr.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (tr *TextRenderer) destroy() {
	gl.DeleteTextures(1, &tr.tex)
	gl.DeleteVertexArrays(1, &tr.vao)
	gl.DeleteProgram(tr.prog)
}
