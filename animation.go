package unveil

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxTweenFields is the number of float64 fields a TweenGroup can drive.
const maxTweenFields = 5

// TweenGroup animates up to five float64 fields on a Node simultaneously.
// Create one with TweenPose and call Update(dt) each frame. The group
// auto-applies values and marks the node dirty. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	count  int
	fields [maxTweenFields]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Pose is the subset of node state an entrance animation drives.
type Pose struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Alpha          float64
}

// PoseOf captures the node's current pose.
func PoseOf(n *Node) Pose {
	return Pose{X: n.X, Y: n.Y, ScaleX: n.ScaleX, ScaleY: n.ScaleY, Alpha: n.Alpha}
}

// Apply writes the pose to n and marks it dirty.
func (p Pose) Apply(n *Node) {
	n.X, n.Y = p.X, p.Y
	n.ScaleX, n.ScaleY = p.ScaleX, p.ScaleY
	n.Alpha = p.Alpha
	n.transformDirty = true
}

// TweenPose creates a TweenGroup that animates the node from its current
// pose to the given pose. Fields already at their target are left out of the
// group, so a pure fade never writes the node's position.
func TweenPose(node *Node, to Pose, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.addIfMoving(&node.X, to.X, duration, fn)
	g.addIfMoving(&node.Y, to.Y, duration, fn)
	g.addIfMoving(&node.ScaleX, to.ScaleX, duration, fn)
	g.addIfMoving(&node.ScaleY, to.ScaleY, duration, fn)
	g.addIfMoving(&node.Alpha, to.Alpha, duration, fn)
	return g
}

func (g *TweenGroup) addIfMoving(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	if *field != to {
		g.add(field, to, duration, fn)
	}
}
