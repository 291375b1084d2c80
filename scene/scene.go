package scene

import "haunted-house/core"

// Scene is the root of a node graph plus global render state.
type Scene struct {
	Root       *Node
	Fog        *Fog
	Background core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Background: core.ColorBlack,
	}
}

func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

func (s *Scene) Remove(node *Node) {
	s.Root.RemoveChild(node)
}

func (s *Scene) Traverse(fn func(*Node)) {
	s.Root.Traverse(fn)
}

// Meshes returns all visible mesh nodes whose ancestors are visible too.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	walkVisible(s.Root, func(n *Node) {
		if n.Kind() == KindMesh {
			out = append(out, n)
		}
	})
	return out
}

// Lights returns all visible light nodes.
func (s *Scene) Lights() []*Node {
	var out []*Node
	walkVisible(s.Root, func(n *Node) {
		if n.Kind() == KindLight {
			out = append(out, n)
		}
	})
	return out
}

func walkVisible(n *Node, fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.Children {
		walkVisible(c, fn)
	}
}
