package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
)

type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindLight
)

func (k NodeKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	}
	return "group"
}

// Node represents an object in the scene graph. A node with Geometry and
// Material is a mesh, a node with Light is a light, anything else is a group.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Visible   bool
	Id        uint32

	Geometry *Geometry
	Material *StandardMaterial
	Light    *Light

	CastShadow    bool
	ReceiveShadow bool

	// Cached world transform
	worldMatrixDirty bool
	worldMatrix      mgl32.Mat4
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Children:         make([]*Node, 0),
		Visible:          true,
		Id:               nodeIdCounter,
		worldMatrixDirty: true,
	}
}

// NewGroup returns an empty transform node.
func NewGroup(name string) *Node {
	return NewNode(name)
}

func NewMesh(name string, geometry *Geometry, material *StandardMaterial) *Node {
	n := NewNode(name)
	n.Geometry = geometry
	n.Material = material
	return n
}

func NewLightNode(name string, light *Light) *Node {
	n := NewNode(name)
	n.Light = light
	return n
}

func (n *Node) Kind() NodeKind {
	switch {
	case n.Light != nil:
		return KindLight
	case n.Geometry != nil && n.Material != nil:
		return KindMesh
	}
	return KindGroup
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.MarkWorldMatrixDirty()
}

// Add attaches several children in order.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		n.AddChild(c)
	}
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.worldMatrixDirty {
		local := n.Transform.Matrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.WorldMatrix().Mul4(local)
		} else {
			n.worldMatrix = local
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

// WorldPosition is the translation part of the world matrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(x, y, z float32) {
	n.Transform.Position = mgl32.Vec3{x, y, z}
	n.MarkWorldMatrixDirty()
}

func (n *Node) Position() mgl32.Vec3 {
	return n.Transform.Position
}

// SetRotation sets Euler angles in radians, applied in XYZ order.
func (n *Node) SetRotation(x, y, z float32) {
	n.Transform.Rotation = mgl32.Vec3{x, y, z}
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(x, y, z float32) {
	n.Transform.Scale = mgl32.Vec3{x, y, z}
	n.MarkWorldMatrixDirty()
}

// SetUniformScale is SetScale(s, s, s).
func (n *Node) SetUniformScale(s float32) {
	n.SetScale(s, s, s)
}

// WorldAABB returns the mesh bounds in world space. ok is false for nodes
// without geometry.
func (n *Node) WorldAABB() (box AABB, ok bool) {
	if n.Geometry == nil {
		return AABB{}, false
	}
	return n.Geometry.LocalAABB.Transform(n.WorldMatrix()), true
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
