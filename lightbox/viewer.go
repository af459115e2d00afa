package lightbox

import (
	"strconv"
	"sync"
)

// ZoomScale is the magnification applied by a click on a fit-scale image
const ZoomScale = 2.5

// DragThreshold is how far (in px, on either axis) the offset must move from
// where a drag started before the gesture counts as a pan
const DragThreshold = 2.0

// Point is a pointer position or a pan offset
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the rendered image box in client coordinates
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// State names the viewer's position in the state machine
type State string

const (
	StateClosed  State = "closed"
	StateFit     State = "open-fit"
	StateZoomed  State = "open-zoomed"
	StatePanning State = "panning"
)

// ScrollLocker is the document whose background scrolling is disabled while
// a viewer is open
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

// Document is a ScrollLocker that only records the flag
type Document struct {
	mu     sync.Mutex
	locked bool
}

func (d *Document) LockScroll() {
	d.mu.Lock()
	d.locked = true
	d.mu.Unlock()
}

func (d *Document) UnlockScroll() {
	d.mu.Lock()
	d.locked = false
	d.mu.Unlock()
}

// ScrollLocked reports whether background scrolling is currently disabled
func (d *Document) ScrollLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

// Snapshot is the externally visible viewer state
type Snapshot struct {
	State        State    `json:"state"`
	Images       []string `json:"images"`
	CurrentIndex int      `json:"currentIndex"`
	CurrentImage string   `json:"currentImage,omitempty"`
	Scale        float64  `json:"scale"`
	PanOffset    Point    `json:"panOffset"`
	Dragging     bool     `json:"dragging"`
	ShowControls bool     `json:"showControls"`
	Counter      string   `json:"counter,omitempty"`
}

// Viewer is a single lightbox instance. It is driven by one event source and
// is not safe for concurrent use.
type Viewer struct {
	doc ScrollLocker

	open         bool
	images       []string
	currentIndex int
	scale        float64
	offset       Point

	dragging   bool
	dragAnchor Point
	dragOrigin Point
	dragMoved  bool
}

// NewViewer creates a closed viewer bound to doc
func NewViewer(doc ScrollLocker) *Viewer {
	return &Viewer{doc: doc, scale: 1}
}

// Open shows images starting at initialIndex. Index, zoom and pan are reset
// on every closed->open transition and background scroll is locked.
func (v *Viewer) Open(images []string, initialIndex int) {
	v.images = append([]string(nil), images...)
	v.currentIndex = clampIndex(initialIndex, len(v.images))
	v.resetZoom()
	if !v.open {
		v.open = true
		v.doc.LockScroll()
	}
}

// Close hides the viewer and releases the scroll lock
func (v *Viewer) Close() {
	v.open = false
	v.resetZoom()
	v.doc.UnlockScroll()
}

// Release tears the viewer down. The scroll lock is cleared even if the
// viewer was never opened or already closed.
func (v *Viewer) Release() {
	v.Close()
	v.images = nil
}

// IsOpen reports whether the viewer is showing
func (v *Viewer) IsOpen() bool {
	return v.open
}

// Next advances to the following image, wrapping past the last one
func (v *Viewer) Next() {
	if !v.canNavigate() {
		return
	}
	v.currentIndex = (v.currentIndex + 1) % len(v.images)
	v.resetZoom()
}

// Previous goes back one image, wrapping before the first one
func (v *Viewer) Previous() {
	if !v.canNavigate() {
		return
	}
	v.currentIndex = (v.currentIndex - 1 + len(v.images)) % len(v.images)
	v.resetZoom()
}

// HandleKey applies a keyboard key: Escape closes, arrows navigate
func (v *Viewer) HandleKey(key string) {
	if !v.open {
		return
	}
	switch key {
	case "Escape":
		v.Close()
	case "ArrowRight":
		v.Next()
	case "ArrowLeft":
		v.Previous()
	}
}

// Click handles a click on the image at client position p. A click that ends
// a drag is swallowed; otherwise it toggles between fit and zoomed, zooming
// toward the clicked point.
func (v *Viewer) Click(p Point, rect Rect) {
	if !v.open {
		return
	}
	if v.dragMoved {
		v.dragMoved = false
		return
	}
	if v.scale > 1 {
		v.resetZoom()
		return
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		return
	}

	xFraction := (p.X - rect.Left) / rect.Width
	yFraction := (p.Y - rect.Top) / rect.Height

	v.scale = ZoomScale
	v.offset = Point{
		X: (0.5 - xFraction) * rect.Width * ZoomScale,
		Y: (0.5 - yFraction) * rect.Height * ZoomScale,
	}
}

// PointerDown starts tracking a pan while zoomed
func (v *Viewer) PointerDown(p Point) {
	if !v.open || v.scale <= 1 {
		return
	}
	v.dragging = true
	v.dragMoved = false
	v.dragOrigin = v.offset
	v.dragAnchor = Point{X: p.X - v.offset.X, Y: p.Y - v.offset.Y}
}

// PointerMove pans the image while a drag is tracked
func (v *Viewer) PointerMove(p Point) {
	if !v.dragging || v.scale <= 1 {
		return
	}
	next := Point{X: p.X - v.dragAnchor.X, Y: p.Y - v.dragAnchor.Y}
	if abs(next.X-v.dragOrigin.X) > DragThreshold || abs(next.Y-v.dragOrigin.Y) > DragThreshold {
		v.dragMoved = true
	}
	v.offset = next
}

// PointerUp ends tracking. The offset is kept as is.
func (v *Viewer) PointerUp() {
	v.dragging = false
}

// PointerLeave behaves like PointerUp
func (v *Viewer) PointerLeave() {
	v.PointerUp()
}

// State returns the current state machine state
func (v *Viewer) State() State {
	switch {
	case !v.open:
		return StateClosed
	case v.dragging:
		return StatePanning
	case v.scale > 1:
		return StateZoomed
	default:
		return StateFit
	}
}

// Snapshot captures the viewer for rendering
func (v *Viewer) Snapshot() Snapshot {
	s := Snapshot{
		State:        v.State(),
		Images:       append([]string(nil), v.images...),
		CurrentIndex: v.currentIndex,
		Scale:        v.scale,
		PanOffset:    v.offset,
		Dragging:     v.dragging,
		ShowControls: v.canNavigate(),
	}
	if v.open && len(v.images) > 0 {
		s.CurrentImage = v.images[v.currentIndex]
	}
	if s.ShowControls {
		s.Counter = strconv.Itoa(v.currentIndex+1) + " / " + strconv.Itoa(len(v.images))
	}
	return s
}

func (v *Viewer) canNavigate() bool {
	return v.open && len(v.images) > 1
}

// resetZoom returns to fit scale and drops any drag in progress
func (v *Viewer) resetZoom() {
	v.scale = 1
	v.offset = Point{}
	v.dragging = false
	v.dragMoved = false
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
