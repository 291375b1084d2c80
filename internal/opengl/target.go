package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// RenderTarget is an off-screen colour + depth framebuffer at the drawing
// buffer resolution. Present blits it to the window framebuffer.
type RenderTarget struct {
	FBO      uint32
	ColorTex uint32
	DepthRBO uint32
	Width    int32
	Height   int32
}

func NewRenderTarget(width, height int) (*RenderTarget, error) {
	rt := &RenderTarget{}
	if err := rt.alloc(width, height); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTarget) alloc(width, height int) error {
	rt.Width = int32(width)
	rt.Height = int32(height)

	gl.GenTextures(1, &rt.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, rt.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		rt.Width, rt.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &rt.DepthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.DepthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, rt.Width, rt.Height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &rt.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.ColorTex, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.DepthRBO)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.free()
		return fmt.Errorf("render target incomplete: status=0x%X", status)
	}
	return nil
}

func (rt *RenderTarget) free() {
	if rt.FBO != 0 {
		gl.DeleteFramebuffers(1, &rt.FBO)
		rt.FBO = 0
	}
	if rt.ColorTex != 0 {
		gl.DeleteTextures(1, &rt.ColorTex)
		rt.ColorTex = 0
	}
	if rt.DepthRBO != 0 {
		gl.DeleteRenderbuffers(1, &rt.DepthRBO)
		rt.DepthRBO = 0
	}
}

// Resize recreates the attachments at the new pixel dimensions.
func (rt *RenderTarget) Resize(width, height int) error {
	if int32(width) == rt.Width && int32(height) == rt.Height && rt.FBO != 0 {
		return nil
	}
	rt.free()
	return rt.alloc(width, height)
}

// Blit scales the colour buffer onto the default framebuffer.
func (rt *RenderTarget) Blit(dstWidth, dstHeight int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rt.FBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	filter := uint32(gl.NEAREST)
	if int32(dstWidth) != rt.Width || int32(dstHeight) != rt.Height {
		filter = gl.LINEAR
	}
	gl.BlitFramebuffer(0, 0, rt.Width, rt.Height,
		0, 0, int32(dstWidth), int32(dstHeight), gl.COLOR_BUFFER_BIT, filter)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (rt *RenderTarget) Destroy() {
	rt.free()
}
