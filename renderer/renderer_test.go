package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
	"haunted-house/scene"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

type fakeBackend struct {
	calls     []string
	bufW      int
	bufH      int
	shadowErr error
	frames    []*Frame
	shadows   []*ShadowView
	text      []string
}

func (f *fakeBackend) Resize(w, h int) {
	f.calls = append(f.calls, "resize")
	f.bufW, f.bufH = w, h
}

func (f *fakeBackend) RenderShadow(sv *ShadowView, _ []DrawItem) error {
	f.calls = append(f.calls, "shadow")
	f.shadows = append(f.shadows, sv)
	return f.shadowErr
}

func (f *fakeBackend) RenderScene(frame *Frame) {
	f.calls = append(f.calls, "scene")
	f.frames = append(f.frames, frame)
}

func (f *fakeBackend) Present(int, int) { f.calls = append(f.calls, "present") }

func (f *fakeBackend) DrawText(lines []string, _, _ int) {
	f.calls = append(f.calls, "text")
	f.text = append([]string(nil), lines...)
}

func (f *fakeBackend) Destroy() {}

func newCamera() *scene.PerspectiveCamera {
	c := scene.NewPerspectiveCamera(75, 800.0/600.0, 0.1, 100)
	c.SetPosition(0, 0, 5)
	c.LookAt(mgl32.Vec3{})
	return c
}

func boxAt(name string, mat *scene.StandardMaterial, x, y, z float32) *scene.Node {
	n := scene.NewMesh(name, scene.NewBoxGeometry(1, 1, 1), mat)
	n.SetPosition(x, y, z)
	return n
}

func TestViewportResize(t *testing.T) {
	cam := newCamera()
	re := NewRenderEngine(&fakeBackend{})
	vp := NewViewport(cam, re)

	vp.Resize(800, 600, 1)
	if !approx(cam.Aspect, 800.0/600.0) {
		t.Errorf("aspect after 800x600: got %v", cam.Aspect)
	}

	vp.Resize(1600, 400, 3)
	if cam.Aspect != 4 {
		t.Errorf("aspect after 1600x400: expected 4, got %v", cam.Aspect)
	}
	p := cam.ProjectionMatrix()
	if !approx(p.At(1, 1)/p.At(0, 0), 4) {
		t.Error("projection was not updated")
	}
	if w, h := re.Size(); w != 1600 || h != 400 {
		t.Errorf("renderer size: expected 1600x400, got %dx%d", w, h)
	}
	if re.PixelRatio() != 2 {
		t.Errorf("pixel ratio: expected cap of 2, got %v", re.PixelRatio())
	}
	if w, h := re.DrawingBufferSize(); w != 3200 || h != 800 {
		t.Errorf("drawing buffer: expected 3200x800, got %dx%d", w, h)
	}

	vp.Resize(1600, 400, 1.5)
	if re.PixelRatio() != 1.5 {
		t.Errorf("pixel ratio below cap: expected 1.5, got %v", re.PixelRatio())
	}
}

func TestViewportClampsDegenerateSize(t *testing.T) {
	cam := newCamera()
	vp := NewViewport(cam, nil)
	vp.Resize(0, 0, 0)
	if vp.Width != 1 || vp.Height != 1 || vp.PixelRatio != 1 {
		t.Errorf("expected 1x1 @1, got %dx%d @%v", vp.Width, vp.Height, vp.PixelRatio)
	}
	if cam.Aspect != 1 {
		t.Errorf("aspect: expected 1, got %v", cam.Aspect)
	}
	vp.Resize(640, -5, 1)
	if vp.Height != 1 || cam.Aspect != 640 {
		t.Errorf("negative height: got %d, aspect %v", vp.Height, cam.Aspect)
	}
}

func TestBuildFrameSortsTransparentBackToFront(t *testing.T) {
	s := scene.NewScene()
	solid := scene.NewStandardMaterial("solid")
	glass := scene.NewStandardMaterial("glass")
	glass.Transparent = true

	s.Add(
		boxAt("near", glass, 0, 0, 2),
		boxAt("wall", solid, 0, 0, 0),
		boxAt("far", glass, 0, 0, -2),
	)
	f := BuildFrame(s, newCamera(), FrameOptions{FrustumCulling: true})

	if len(f.Opaque) != 1 || f.Opaque[0].Name != "wall" {
		t.Fatalf("opaque: got %d items", len(f.Opaque))
	}
	if len(f.Transparent) != 2 {
		t.Fatalf("transparent: expected 2, got %d", len(f.Transparent))
	}
	if f.Transparent[0].Name != "far" || f.Transparent[1].Name != "near" {
		t.Errorf("expected far then near, got %s, %s", f.Transparent[0].Name, f.Transparent[1].Name)
	}
}

func TestBuildFrameCulling(t *testing.T) {
	s := scene.NewScene()
	mat := scene.NewStandardMaterial("m")
	behind := boxAt("behind", mat, 0, 0, 20)
	behind.CastShadow = true
	s.Add(boxAt("front", mat, 0, 0, 0), behind)
	cam := newCamera()

	f := BuildFrame(s, cam, FrameOptions{FrustumCulling: true, Shadows: true})
	if len(f.Opaque) != 1 || f.Culled != 1 {
		t.Errorf("expected 1 drawn, 1 culled, got %d/%d", len(f.Opaque), f.Culled)
	}
	// Off-screen meshes still cast shadows.
	if len(f.Casters) != 1 || f.Casters[0].Name != "behind" {
		t.Errorf("casters: got %d", len(f.Casters))
	}

	f = BuildFrame(s, cam, FrameOptions{})
	if len(f.Opaque) != 2 || f.Culled != 0 || len(f.Casters) != 0 {
		t.Errorf("without culling or shadows: %d drawn, %d culled, %d casters", len(f.Opaque), f.Culled, len(f.Casters))
	}
}

func TestBuildFrameLights(t *testing.T) {
	s := scene.NewScene()
	s.Fog = &scene.Fog{Color: core.ColorHex("#262837"), Near: 1, Far: 15}
	s.Add(
		scene.NewLightNode("a", scene.NewAmbientLight(core.ColorWhite, 0.25)),
		scene.NewLightNode("b", scene.NewAmbientLight(core.ColorWhite, 0.25)),
	)
	moon := scene.NewLightNode("moon", scene.NewDirectionalLight(core.ColorWhite, 0.5))
	moon.SetPosition(4, 5, -2)
	moon.Light.CastShadow = true
	s.Add(moon)
	for i := 0; i < 6; i++ {
		p := scene.NewLightNode("p", scene.NewPointLight(core.ColorWhite, 2, 3))
		p.Light.CastShadow = true
		p.SetPosition(float32(i), 1, 0)
		s.Add(p)
	}

	f := BuildFrame(s, newCamera(), FrameOptions{Shadows: true})
	if !approx(f.Ambient.X(), 0.5) {
		t.Errorf("ambient: expected 0.5, got %v", f.Ambient)
	}
	if f.Directional == nil {
		t.Fatal("expected a directional light")
	}
	want := mgl32.Vec3{4, 5, -2}.Normalize()
	if !f.Directional.Direction.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("direction: expected %v, got %v", want, f.Directional.Direction)
	}
	if len(f.Points) != 6 {
		t.Fatalf("points: expected 6, got %d", len(f.Points))
	}
	if f.Points[0].Radiance.X() != 2 || f.Points[0].Distance != 3 || f.Points[0].Decay != 1 {
		t.Errorf("point light: %+v", f.Points[0])
	}
	// One directional map plus the first MaxPointShadows point lights.
	if got := len(f.Shadows()); got != 1+MaxPointShadows {
		t.Errorf("shadow views: expected %d, got %d", 1+MaxPointShadows, got)
	}
	for i, p := range f.Points {
		if (p.Shadow != nil) != (i < MaxPointShadows) {
			t.Errorf("point %d: unexpected shadow state", i)
		}
		if p.Shadow != nil && p.Shadow.Slot != i {
			t.Errorf("point %d: slot %d", i, p.Shadow.Slot)
		}
	}
	if f.Fog != s.Fog {
		t.Error("fog not carried into the frame")
	}

	f = BuildFrame(s, newCamera(), FrameOptions{})
	if len(f.Shadows()) != 0 {
		t.Error("shadows disabled: expected no shadow views")
	}
}

func TestPointShadowFacesLookOutward(t *testing.T) {
	l := scene.NewPointLight(core.ColorWhite, 1, 4)
	l.Shadow.Far = 4
	pos := mgl32.Vec3{0, 2.2, 2.7}
	sv := pointShadow(pos, l, 0)
	for i, face := range cubeFaces {
		clip := sv.Faces[i].Mul4x1(pos.Add(face.dir).Vec4(1))
		if !approx(clip.X()/clip.W(), 0) || !approx(clip.Y()/clip.W(), 0) {
			t.Errorf("face %d: centre maps to %v", i, clip)
		}
		if clip.W() <= 0 {
			t.Errorf("face %d: point is behind the face camera", i)
		}
	}
}

func TestDirectionalShadowCoversTarget(t *testing.T) {
	l := scene.NewDirectionalLight(core.ColorWhite, 0.5)
	l.Shadow.Far = 15
	sv := directionalShadow(mgl32.Vec3{4, 5, -2}, l)
	ndc := mgl32.TransformCoordinate(mgl32.Vec3{}, sv.ViewProj)
	if !approx(ndc.X(), 0) || !approx(ndc.Y(), 0) || ndc.Z() < -1 || ndc.Z() > 1 {
		t.Errorf("target should sit inside the shadow volume, got %v", ndc)
	}
}

func TestRenderDrivesBackend(t *testing.T) {
	fb := &fakeBackend{}
	re := NewRenderEngine(fb)
	re.EnableShadows()
	re.SetSize(800, 600)
	re.SetPixelRatio(2)

	s := scene.NewScene()
	mat := scene.NewStandardMaterial("m")
	s.Add(boxAt("box", mat, 0, 0, 0))
	moon := scene.NewLightNode("moon", scene.NewDirectionalLight(core.ColorWhite, 0.5))
	moon.SetPosition(4, 5, -2)
	moon.Light.CastShadow = true
	s.Add(moon)

	re.DrawText("ambient intensity 0.120")
	if err := re.Render(s, newCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []string{"resize", "shadow", "scene", "present", "text"}
	if len(fb.calls) != len(want) {
		t.Fatalf("calls: expected %v, got %v", want, fb.calls)
	}
	for i := range want {
		if fb.calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], fb.calls[i])
		}
	}
	if fb.bufW != 1600 || fb.bufH != 1200 {
		t.Errorf("buffer: expected 1600x1200, got %dx%d", fb.bufW, fb.bufH)
	}
	if len(fb.text) != 1 {
		t.Errorf("text: got %v", fb.text)
	}

	fb.calls = nil
	if err := re.Render(s, newCamera()); err != nil {
		t.Fatal(err)
	}
	for _, c := range fb.calls {
		if c == "resize" || c == "text" {
			t.Errorf("unexpected %s on an unchanged frame", c)
		}
	}

	objects, vertices, triangles, culled := re.DrawStats()
	if objects != 1 || vertices != 24 || triangles != 12 || culled != 0 {
		t.Errorf("DrawStats: %d %d %d %d", objects, vertices, triangles, culled)
	}
}

func TestRenderShadowFailureDisablesShadows(t *testing.T) {
	fb := &fakeBackend{shadowErr: errors.New("framebuffer incomplete")}
	re := NewRenderEngine(fb)
	re.EnableShadows()

	s := scene.NewScene()
	door := scene.NewLightNode("door", scene.NewPointLight(core.ColorHex("#ff7d46"), 1, 7))
	door.Light.CastShadow = true
	s.Add(door)

	if err := re.Render(s, newCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if re.ShadowsEnabled {
		t.Error("a shadow failure should disable shadows")
	}
	if got := fb.frames[0].Points[0].Shadow; got != nil {
		t.Error("main pass should not sample a failed shadow map")
	}

	fb.shadows = nil
	re.Render(s, newCamera())
	if len(fb.shadows) != 0 {
		t.Errorf("expected no further shadow passes, got %d", len(fb.shadows))
	}
}

func TestRenderWithoutScene(t *testing.T) {
	re := NewRenderEngine(&fakeBackend{})
	if err := re.Render(nil, newCamera()); err == nil {
		t.Error("expected an error without a scene")
	}
}
