package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// halfBlock is drawn with the upper pixel as foreground and the lower
// pixel as background.
const halfBlock = "▀"

// FramebufferSize returns the framebuffer dimensions that fill a terminal
// of cols x rows cells. Each cell shows two vertically stacked pixels.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Framebuffer rows 2k and 2k+1 share terminal row k of area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			return
		}
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.At(x, topY)),
					Bg: rgbaToColor(fb.At(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor maps transparent pixels (outside the buffer) to the
// terminal default.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents a framebuffer on a terminal with optional
// text lines drawn over the top rows.
type TerminalRenderer struct {
	term    *uv.Terminal
	fb      *Framebuffer
	overlay []string
}

// NewTerminalRenderer creates a renderer that draws fb on term.
func NewTerminalRenderer(term *uv.Terminal, fb *Framebuffer) *TerminalRenderer {
	return &TerminalRenderer{term: term, fb: fb}
}

// SetOverlay replaces the text lines shown over the image. Nil clears it.
func (t *TerminalRenderer) SetOverlay(lines []string) {
	t.overlay = lines
}

var overlayStyle = uv.Style{
	Fg: color.RGBA{255, 255, 255, 255},
	Bg: color.RGBA{0, 0, 0, 255},
}

// Draw implements uv.Drawable.
func (t *TerminalRenderer) Draw(scr uv.Screen, area uv.Rectangle) {
	t.fb.Draw(scr, area)

	for i, line := range t.overlay {
		y := area.Min.Y + i
		if y >= area.Max.Y {
			break
		}
		x := area.Min.X
		for _, r := range line {
			if x >= area.Max.X {
				break
			}
			scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: overlayStyle})
			x++
		}
	}
}

// Render draws the current frame and flushes it to the terminal.
func (t *TerminalRenderer) Render() error {
	t.term.Draw(t)
	return t.term.Display()
}
