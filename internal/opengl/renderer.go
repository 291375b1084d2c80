package opengl

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
	"haunted-house/renderer"
	"haunted-house/scene"
)

var _ renderer.Backend = (*Renderer)(nil)

// GPUMesh holds the OpenGL buffer objects for an uploaded geometry.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	modelLoc         int32
	viewLoc          int32
	projectionLoc    int32
	lightViewProjLoc int32

	// Lighting uniforms
	cameraPosLoc     int32
	ambientLightLoc  int32
	hasDirLightLoc   int32
	dirLightDirLoc   int32
	dirLightColorLoc int32
	dirLightShadLoc  int32
	dirShadowBiasLoc int32
	dirShadowTexLoc  int32

	pointLightCountLoc    int32
	pointLightPosLoc      [renderer.MaxPointLights]int32
	pointLightColorLoc    [renderer.MaxPointLights]int32
	pointLightDistanceLoc [renderer.MaxPointLights]int32
	pointLightDecayLoc    [renderer.MaxPointLights]int32
	pointLightShadowLoc   [renderer.MaxPointLights]int32
	pointShadowFarLoc     [renderer.MaxPointShadows]int32
	pointShadowBiasLoc    [renderer.MaxPointShadows]int32
	receiveShadowLoc      int32

	// Material uniforms
	matColorLoc          int32
	matMetalnessLoc      int32
	matRoughnessLoc      int32
	aoMapIntensityLoc    int32
	displacementScaleLoc int32
	hasSlotLoc           [slotCount]int32
	repeatLoc            [slotCount]int32

	// Fog
	fogEnabledLoc int32
	fogColorLoc   int32
	fogNearLoc    int32
	fogFarLoc     int32

	// Directional shadow pass
	shadowProg        uint32
	shadowLightMVPLoc int32
	dirShadow         *ShadowMap

	// Point shadow pass
	cubeProg            uint32
	cubeModelLoc        int32
	cubeFaceViewProjLoc int32
	cubeLightPosLoc     int32
	cubeFarLoc          int32
	cubeShadows         [renderer.MaxPointShadows]*CubeShadowMap

	target *RenderTarget
	text   *TextRenderer

	gpuMeshes map[*scene.Geometry]*GPUMesh
}

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}
	shadowProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		return nil, fmt.Errorf("depth shader compile: %w", err)
	}
	cubeProg, err := newProgram(cubeDepthVertSrc, cubeDepthFragSrc)
	if err != nil {
		return nil, fmt.Errorf("cube depth shader compile: %w", err)
	}
	text, err := newTextRenderer()
	if err != nil {
		return nil, fmt.Errorf("text shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	loc := func(p uint32, name string) int32 {
		return gl.GetUniformLocation(p, gl.Str(name+"\x00"))
	}

	r := &Renderer{
		program:    prog,
		shadowProg: shadowProg,
		cubeProg:   cubeProg,
		text:       text,

		modelLoc:         loc(prog, "model"),
		viewLoc:          loc(prog, "view"),
		projectionLoc:    loc(prog, "projection"),
		lightViewProjLoc: loc(prog, "lightViewProj"),

		cameraPosLoc:     loc(prog, "cameraPos"),
		ambientLightLoc:  loc(prog, "ambientLight"),
		hasDirLightLoc:   loc(prog, "hasDirLight"),
		dirLightDirLoc:   loc(prog, "dirLightDir"),
		dirLightColorLoc: loc(prog, "dirLightColor"),
		dirLightShadLoc:  loc(prog, "dirLightShadow"),
		dirShadowBiasLoc: loc(prog, "dirShadowBias"),
		dirShadowTexLoc:  loc(prog, "dirShadowTexel"),

		pointLightCountLoc: loc(prog, "pointLightCount"),
		receiveShadowLoc:   loc(prog, "receiveShadow"),

		matColorLoc:          loc(prog, "matColor"),
		matMetalnessLoc:      loc(prog, "matMetalness"),
		matRoughnessLoc:      loc(prog, "matRoughness"),
		aoMapIntensityLoc:    loc(prog, "aoMapIntensity"),
		displacementScaleLoc: loc(prog, "displacementScale"),

		fogEnabledLoc: loc(prog, "fogEnabled"),
		fogColorLoc:   loc(prog, "fogColor"),
		fogNearLoc:    loc(prog, "fogNear"),
		fogFarLoc:     loc(prog, "fogFar"),

		shadowLightMVPLoc: loc(shadowProg, "lightMVP"),

		cubeModelLoc:        loc(cubeProg, "model"),
		cubeFaceViewProjLoc: loc(cubeProg, "faceViewProj"),
		cubeLightPosLoc:     loc(cubeProg, "lightPos"),
		cubeFarLoc:          loc(cubeProg, "far"),

		gpuMeshes: make(map[*scene.Geometry]*GPUMesh),
	}

	for i := 0; i < renderer.MaxPointLights; i++ {
		r.pointLightPosLoc[i] = loc(prog, fmt.Sprintf("pointLightPos[%d]", i))
		r.pointLightColorLoc[i] = loc(prog, fmt.Sprintf("pointLightColor[%d]", i))
		r.pointLightDistanceLoc[i] = loc(prog, fmt.Sprintf("pointLightDistance[%d]", i))
		r.pointLightDecayLoc[i] = loc(prog, fmt.Sprintf("pointLightDecay[%d]", i))
		r.pointLightShadowLoc[i] = loc(prog, fmt.Sprintf("pointLightShadow[%d]", i))
	}
	for i := 0; i < renderer.MaxPointShadows; i++ {
		r.pointShadowFarLoc[i] = loc(prog, fmt.Sprintf("pointShadowFar[%d]", i))
		r.pointShadowBiasLoc[i] = loc(prog, fmt.Sprintf("pointShadowBias[%d]", i))
	}

	// Every sampler gets its own unit so 2D, shadow and cube samplers never
	// alias.
	samplers := [slotCount]string{"map", "normalMap", "roughnessMap", "metalnessMap", "aoMap", "alphaMap", "displacementMap"}
	flags := [slotCount]string{"hasMap", "hasNormalMap", "hasRoughnessMap", "hasMetalnessMap", "hasAOMap", "hasAlphaMap", "hasDisplacementMap"}
	gl.UseProgram(prog)
	for slot := 0; slot < slotCount; slot++ {
		gl.Uniform1i(loc(prog, samplers[slot]), int32(slot))
		r.hasSlotLoc[slot] = loc(prog, flags[slot])
		r.repeatLoc[slot] = loc(prog, fmt.Sprintf("texRepeat[%d]", slot))
	}
	gl.Uniform1i(loc(prog, "dirShadowMap"), unitDirShadow)
	for i := 0; i < renderer.MaxPointShadows; i++ {
		gl.Uniform1i(loc(prog, fmt.Sprintf("pointShadowMap%d", i)), int32(unitPointShadow+i))
	}

	// Safe even when shadows are disabled.
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.lightViewProjLoc, 1, false, &ident[0])

	return r, nil
}

// Resize reallocates the off-screen drawing buffer.
func (r *Renderer) Resize(width, height int) {
	if r.target == nil {
		rt, err := NewRenderTarget(width, height)
		if err != nil {
			log.Printf("[Renderer] render target: %v", err)
			return
		}
		r.target = rt
		return
	}
	if err := r.target.Resize(width, height); err != nil {
		log.Printf("[Renderer] render target resize: %v", err)
		r.target = nil
	}
}

// ── Shadow passes ─────────────────────────────────────────────────────────────

// RenderShadow fills the shadow map for one light, creating it on first use
// or when the requested size changes.
func (r *Renderer) RenderShadow(sv *renderer.ShadowView, casters []renderer.DrawItem) error {
	// Back faces only, like the usual shadow side flip; reduces acne.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
	defer gl.CullFace(gl.BACK)

	switch sv.Type {
	case scene.LightDirectional:
		return r.renderDirShadow(sv, casters)
	case scene.LightPoint:
		return r.renderCubeShadow(sv, casters)
	}
	return fmt.Errorf("no shadow support for %v lights", sv.Type)
}

func (r *Renderer) renderDirShadow(sv *renderer.ShadowView, casters []renderer.DrawItem) error {
	if r.dirShadow == nil || r.dirShadow.Size != int32(sv.MapSize) {
		if r.dirShadow != nil {
			r.dirShadow.Destroy()
		}
		sm, err := NewShadowMap(sv.MapSize)
		if err != nil {
			r.dirShadow = nil
			return err
		}
		r.dirShadow = sm
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.dirShadow.FBO)
	gl.Viewport(0, 0, r.dirShadow.Size, r.dirShadow.Size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.shadowProg)
	for _, it := range casters {
		gpu := r.ensureUploaded(it.Geometry)
		if gpu == nil {
			continue
		}
		lightMVP := sv.ViewProj.Mul4(it.Model)
		gl.UniformMatrix4fv(r.shadowLightMVPLoc, 1, false, &lightMVP[0])
		drawGPUMesh(gpu)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (r *Renderer) renderCubeShadow(sv *renderer.ShadowView, casters []renderer.DrawItem) error {
	if sv.Slot < 0 || sv.Slot >= renderer.MaxPointShadows {
		return fmt.Errorf("point shadow slot %d out of range", sv.Slot)
	}
	cm := r.cubeShadows[sv.Slot]
	if cm == nil || cm.Size != int32(sv.MapSize) {
		if cm != nil {
			cm.Destroy()
		}
		var err error
		cm, err = NewCubeShadowMap(sv.MapSize)
		if err != nil {
			r.cubeShadows[sv.Slot] = nil
			return err
		}
		r.cubeShadows[sv.Slot] = cm
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, cm.FBO)
	gl.Viewport(0, 0, cm.Size, cm.Size)
	gl.UseProgram(r.cubeProg)
	gl.Uniform3f(r.cubeLightPosLoc, sv.Position.X(), sv.Position.Y(), sv.Position.Z())
	gl.Uniform1f(r.cubeFarLoc, sv.Far)
	for face := 0; face < 6; face++ {
		cm.BindFace(face)
		gl.Clear(gl.DEPTH_BUFFER_BIT)
		gl.UniformMatrix4fv(r.cubeFaceViewProjLoc, 1, false, &sv.Faces[face][0])
		for _, it := range casters {
			gpu := r.ensureUploaded(it.Geometry)
			if gpu == nil {
				continue
			}
			gl.UniformMatrix4fv(r.cubeModelLoc, 1, false, &it.Model[0])
			drawGPUMesh(gpu)
		}
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// ── Main pass ─────────────────────────────────────────────────────────────────

// RenderScene clears the drawing buffer and draws opaque items, then
// transparent items with blending.
func (r *Renderer) RenderScene(f *renderer.Frame) {
	if r.target == nil {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.target.FBO)
	gl.Viewport(0, 0, r.target.Width, r.target.Height)
	gl.ClearColor(f.Clear.R, f.Clear.G, f.Clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	gl.UseProgram(r.program)
	r.applyFrame(f)

	for _, it := range f.Opaque {
		r.drawItem(it)
	}

	if len(f.Transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		for _, it := range f.Transparent {
			r.drawItem(it)
		}
		gl.Disable(gl.BLEND)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// applyFrame sets per-frame camera, light, shadow and fog uniforms.
func (r *Renderer) applyFrame(f *renderer.Frame) {
	gl.UniformMatrix4fv(r.viewLoc, 1, false, &f.View[0])
	gl.UniformMatrix4fv(r.projectionLoc, 1, false, &f.Projection[0])
	gl.Uniform3f(r.cameraPosLoc, f.CameraPosition.X(), f.CameraPosition.Y(), f.CameraPosition.Z())
	gl.Uniform3f(r.ambientLightLoc, f.Ambient.X(), f.Ambient.Y(), f.Ambient.Z())

	if d := f.Directional; d != nil {
		gl.Uniform1i(r.hasDirLightLoc, 1)
		gl.Uniform3f(r.dirLightDirLoc, d.Direction.X(), d.Direction.Y(), d.Direction.Z())
		gl.Uniform3f(r.dirLightColorLoc, d.Radiance.X(), d.Radiance.Y(), d.Radiance.Z())
		if d.Shadow != nil && r.dirShadow != nil {
			gl.Uniform1i(r.dirLightShadLoc, 1)
			gl.UniformMatrix4fv(r.lightViewProjLoc, 1, false, &d.Shadow.ViewProj[0])
			gl.Uniform1f(r.dirShadowBiasLoc, d.Shadow.Bias)
			gl.Uniform1f(r.dirShadowTexLoc, 1/float32(r.dirShadow.Size))
			gl.ActiveTexture(gl.TEXTURE0 + unitDirShadow)
			gl.BindTexture(gl.TEXTURE_2D, r.dirShadow.DepthTex)
		} else {
			gl.Uniform1i(r.dirLightShadLoc, 0)
		}
	} else {
		gl.Uniform1i(r.hasDirLightLoc, 0)
		gl.Uniform1i(r.dirLightShadLoc, 0)
	}

	gl.Uniform1i(r.pointLightCountLoc, int32(len(f.Points)))
	for i, p := range f.Points {
		gl.Uniform3f(r.pointLightPosLoc[i], p.Position.X(), p.Position.Y(), p.Position.Z())
		gl.Uniform3f(r.pointLightColorLoc[i], p.Radiance.X(), p.Radiance.Y(), p.Radiance.Z())
		gl.Uniform1f(r.pointLightDistanceLoc[i], p.Distance)
		gl.Uniform1f(r.pointLightDecayLoc[i], p.Decay)

		slot := int32(-1)
		if sv := p.Shadow; sv != nil && r.cubeShadows[sv.Slot] != nil {
			slot = int32(sv.Slot)
			gl.Uniform1f(r.pointShadowFarLoc[sv.Slot], sv.Far)
			gl.Uniform1f(r.pointShadowBiasLoc[sv.Slot], sv.Bias)
			gl.ActiveTexture(gl.TEXTURE0 + unitPointShadow + uint32(sv.Slot))
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.cubeShadows[sv.Slot].DepthTex)
		}
		gl.Uniform1i(r.pointLightShadowLoc[i], slot)
	}

	if fog := f.Fog; fog != nil {
		gl.Uniform1i(r.fogEnabledLoc, 1)
		gl.Uniform3f(r.fogColorLoc, fog.Color.R, fog.Color.G, fog.Color.B)
		gl.Uniform1f(r.fogNearLoc, fog.Near)
		gl.Uniform1f(r.fogFarLoc, fog.Far)
	} else {
		gl.Uniform1i(r.fogEnabledLoc, 0)
	}
}

func (r *Renderer) drawItem(it renderer.DrawItem) {
	gpu := r.ensureUploaded(it.Geometry)
	if gpu == nil {
		return
	}
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &it.Model[0])
	gl.Uniform1i(r.receiveShadowLoc, boolToInt(it.ReceiveShadow))
	r.applyMaterial(it.Material)
	drawGPUMesh(gpu)
}

// applyMaterial sets material uniforms and binds every map that has reached
// the GPU. Pending and failed textures leave their slot empty.
func (r *Renderer) applyMaterial(mat *scene.StandardMaterial) {
	gl.Uniform3f(r.matColorLoc, mat.Color.R, mat.Color.G, mat.Color.B)
	gl.Uniform1f(r.matMetalnessLoc, mat.Metalness)
	gl.Uniform1f(r.matRoughnessLoc, mat.Roughness)
	gl.Uniform1f(r.aoMapIntensityLoc, mat.AOMapIntensity)
	gl.Uniform1f(r.displacementScaleLoc, mat.DisplacementScale)

	slots := [slotCount]*scene.Texture{
		slotMap:          mat.Map,
		slotNormal:       mat.NormalMap,
		slotRoughness:    mat.RoughnessMap,
		slotMetalness:    mat.MetalnessMap,
		slotAO:           mat.AOMap,
		slotAlpha:        mat.AlphaMap,
		slotDisplacement: mat.DisplacementMap,
	}
	for slot, tex := range slots {
		id := r.textureID(tex)
		if id == 0 {
			gl.Uniform1i(r.hasSlotLoc[slot], 0)
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
		gl.BindTexture(gl.TEXTURE_2D, id)
		gl.Uniform1i(r.hasSlotLoc[slot], 1)
		gl.Uniform2f(r.repeatLoc[slot], tex.Repeat.X(), tex.Repeat.Y())
	}
}

// textureID uploads a texture the first frame its pixels are available.
func (r *Renderer) textureID(tex *scene.Texture) uint32 {
	if tex == nil {
		return 0
	}
	if tex.GLID != 0 {
		return tex.GLID
	}
	if tex.State() != scene.TextureReady {
		return 0
	}
	if err := UploadTexture(tex); err != nil {
		log.Printf("[Texture] upload %s: %v", tex.Name, err)
		tex.Fail(err)
		return 0
	}
	return tex.GLID
}

// ── Present ───────────────────────────────────────────────────────────────────

// Present scales the drawing buffer onto the window framebuffer.
func (r *Renderer) Present(framebufferWidth, framebufferHeight int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(framebufferWidth), int32(framebufferHeight))
	if r.target == nil {
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		return
	}
	r.target.Blit(framebufferWidth, framebufferHeight)
}

// DrawText draws lines on the window framebuffer, above the scene.
func (r *Renderer) DrawText(lines []string, framebufferWidth, framebufferHeight int) {
	scale := max(1, (framebufferHeight+540)/1080)
	r.text.draw(lines, framebufferWidth, framebufferHeight, scale)
}

// ReleaseGeometry frees the GPU buffers of a geometry.
func (r *Renderer) ReleaseGeometry(geo *scene.Geometry) {
	gpu, ok := r.gpuMeshes[geo]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	delete(r.gpuMeshes, geo)
	geo.GPUData = nil
}

func (r *Renderer) Destroy() {
	for geo := range r.gpuMeshes {
		r.ReleaseGeometry(geo)
	}
	if r.dirShadow != nil {
		r.dirShadow.Destroy()
	}
	for _, cm := range r.cubeShadows {
		if cm != nil {
			cm.Destroy()
		}
	}
	if r.target != nil {
		r.target.Destroy()
	}
	r.text.destroy()
	gl.DeleteProgram(r.program)
	gl.DeleteProgram(r.shadowProg)
	gl.DeleteProgram(r.cubeProg)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(geo *scene.Geometry) *GPUMesh {
	if gpu, ok := r.gpuMeshes[geo]; ok {
		return gpu
	}
	if len(geo.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{
		IndexCount: int32(len(geo.Indices)),
		HasIndices: len(geo.Indices) > 0,
	}
	if !gpu.HasIndices {
		gpu.IndexCount = int32(len(geo.Vertices))
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(geo.Vertices)*int(stride), gl.Ptr(geo.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{2, unsafe.Offsetof(v.UV2)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), a.size, gl.FLOAT, false, stride, gl.PtrOffset(int(a.offset)))
	}

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, gl.Ptr(geo.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[geo] = gpu
	geo.GPUData = gpu
	return gpu
}

func drawGPUMesh(gpu *GPUMesh) {
	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, gpu.IndexCount)
	}
	gl.BindVertexArray(0)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		info := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(info))
		return 0, fmt.Errorf("link failed: %v", info)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		info := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(info))
		return 0, fmt.Errorf("compile failed: %v", info)
	}
	return shader, nil
}
