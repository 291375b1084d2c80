package haunted

import "haunted-house/scene"

// GrassRepeat is how many times the grass maps tile across the floor.
const GrassRepeat = 8

type DoorTextures struct {
	Color            *scene.Texture
	Alpha            *scene.Texture
	AmbientOcclusion *scene.Texture
	Height           *scene.Texture
	Normal           *scene.Texture
	Metalness        *scene.Texture
	Roughness        *scene.Texture
}

// SurfaceTextures is the map set shared by the bricks and the grass.
type SurfaceTextures struct {
	Color            *scene.Texture
	AmbientOcclusion *scene.Texture
	Normal           *scene.Texture
	Roughness        *scene.Texture
}

func (s SurfaceTextures) All() []*scene.Texture {
	return []*scene.Texture{s.Color, s.AmbientOcclusion, s.Normal, s.Roughness}
}

type Textures struct {
	Door   DoorTextures
	Bricks SurfaceTextures
	Grass  SurfaceTextures
}

// LoadTextures requests every map. Handles come back immediately and fill
// in as the loader finishes.
func LoadTextures(l scene.TextureLoader) Textures {
	surface := func(dir string) SurfaceTextures {
		return SurfaceTextures{
			Color:            l.Load("textures/" + dir + "/color.jpg"),
			AmbientOcclusion: l.Load("textures/" + dir + "/ambientOcclusion.jpg"),
			Normal:           l.Load("textures/" + dir + "/normal.jpg"),
			Roughness:        l.Load("textures/" + dir + "/roughness.jpg"),
		}
	}
	t := Textures{
		Door: DoorTextures{
			Color:            l.Load("textures/door/color.jpg"),
			Alpha:            l.Load("textures/door/alpha.jpg"),
			AmbientOcclusion: l.Load("textures/door/ambientOcclusion.jpg"),
			Height:           l.Load("textures/door/height.jpg"),
			Normal:           l.Load("textures/door/normal.jpg"),
			Metalness:        l.Load("textures/door/metalness.jpg"),
			Roughness:        l.Load("textures/door/roughness.jpg"),
		},
		Bricks: surface("bricks"),
		Grass:  surface("grass"),
	}
	for _, tex := range t.Grass.All() {
		tex.SetRepeatWrapping(GrassRepeat, GrassRepeat)
	}
	return t
}

func (t Textures) All() []*scene.Texture {
	d := t.Door
	out := []*scene.Texture{d.Color, d.Alpha, d.AmbientOcclusion, d.Height, d.Normal, d.Metalness, d.Roughness}
	out = append(out, t.Bricks.All()...)
	return append(out, t.Grass.All()...)
}
