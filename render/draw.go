package render

import (
	"image/color"

	"github.com/ByteArena/impulse2d"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Palette holds the colours used by DrawWorld.
type Palette struct {
	Background color.Color
	Body       color.Color
	Static     color.Color
	Joint      color.Color
	Force      color.Color
}

var DefaultPalette = Palette{
	Background: colornames.White,
	Body:       colornames.Black,
	Static:     colornames.Slategray,
	Joint:      colornames.Crimson,
	Force:      colornames.Royalblue,
}

// ForceScale is the drawn length in world units of a unit force.
const ForceScale = 0.1

// DrawWorld draws every body as a closed outline, every joint as a line
// between its two anchors with a dot on each, and every standing force
// applied at a vertex as a short arrow from that vertex.
func DrawWorld(screen *ebiten.Image, world *impulse2d.World, camera *Camera, palette Palette) {
	screen.Fill(palette.Background)

	for _, b := range world.GetBodyList() {
		clr := palette.Body
		if b.IsStatic() {
			clr = palette.Static
		}

		vertices := b.GetWorldVertices()
		for i := range vertices {
			strokeSegment(screen, camera, vertices[i], vertices[(i+1)%len(vertices)], 1, clr)
		}

		for _, f := range b.GetForces() {
			index, ok := f.Point.GetVertex()
			if !ok {
				continue
			}
			from := vertices[index]
			to := impulse2d.Vec2Add(from, impulse2d.Vec2MulScalar(ForceScale, f.Force))
			strokeSegment(screen, camera, from, to, 1, palette.Force)
		}
	}

	for _, j := range world.GetJointList() {
		a := j.GetAnchorA()
		b := j.GetAnchorB()
		strokeSegment(screen, camera, a, b, 2, palette.Joint)

		for _, p := range []impulse2d.Vec2{a, b} {
			x, y := camera.WorldToScreen(p)
			vector.DrawFilledCircle(screen, float32(x), float32(y), 2, palette.Joint, true)
		}
	}
}

func strokeSegment(screen *ebiten.Image, camera *Camera, a, b impulse2d.Vec2, width float32, clr color.Color) {
	x0, y0 := camera.WorldToScreen(a)
	x1, y1 := camera.WorldToScreen(b)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
}
