package anim_test

import (
	"bytes"
	"image"
	"image/gif"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fangj99/gifmaze/internal/anim"
	"github.com/fangj99/gifmaze/internal/gifenc"
	"github.com/fangj99/gifmaze/internal/grid"
	"github.com/fangj99/gifmaze/internal/maze"
)

type frameLog struct {
	frames []anim.FrameInfo
}

func (l *frameLog) OnFrame(f anim.FrameInfo) {
	l.frames = append(l.frames, f)
}

// dirtyOnly reports changes without ever tracking a box.
type dirtyOnly struct {
	*maze.Maze
	changes int
}

func (d *dirtyOnly) ChangeCount() int            { return d.changes }
func (d *dirtyOnly) DirtyBox() (grid.Box, bool) { return grid.Box{}, false }
func (d *dirtyOnly) ResetDirty()                 { d.changes = 0 }

func decode(s *gifenc.Surface) *gif.GIF {
	g, err := gif.DecodeAll(bytes.NewReader(s.Export()))
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("Engine", func() {
	var (
		surface *gifenc.Surface
		m       *maze.Maze
		log     *frameLog
	)

	const cellSize = 3
	offset := image.Pt(2, 1)

	BeforeEach(func() {
		var err error
		surface, err = gifenc.NewSurface(5*cellSize+4, 5*cellSize+2, 2)
		Expect(err).NotTo(HaveOccurred())
		m, err = maze.New(5, 5, nil)
		Expect(err).NotTo(HaveOccurred())
		log = &frameLog{}
	})

	newEngine := func(opts ...anim.Option) *anim.Engine {
		e, err := anim.New(surface, m, cellSize, offset, opts...)
		Expect(err).NotTo(HaveOccurred())
		e.Observe(log)
		return e
	}

	Context("with speed 1", func() {
		It("emits one frame covering the mutated cell", func() {
			e := newEngine(anim.Speed(1))
			m.Mark(grid.Cell{X: 2, Y: 4}, maze.Tree)
			Expect(e.Refresh()).To(Succeed())

			Expect(e.Frames()).To(Equal(1))
			Expect(m.ChangeCount()).To(Equal(0))
			_, dirty := m.DirtyBox()
			Expect(dirty).To(BeFalse())

			g := decode(surface)
			Expect(g.Image).To(HaveLen(1))
			Expect(g.Image[0].Bounds()).To(Equal(image.Rect(8, 13, 11, 16)))
			Expect(g.Image[0].Pix).To(HaveEach(uint8(maze.Tree)))
		})
	})

	Context("below the threshold", func() {
		It("keeps changes pending until speed is reached", func() {
			e := newEngine(anim.Speed(3))
			m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
			Expect(e.Refresh()).To(Succeed())
			m.Mark(grid.Cell{X: 1, Y: 0}, maze.Tree)
			Expect(e.Refresh()).To(Succeed())
			Expect(e.Frames()).To(Equal(0))

			m.Mark(grid.Cell{X: 2, Y: 0}, maze.Tree)
			Expect(e.Refresh()).To(Succeed())
			Expect(e.Frames()).To(Equal(1))
			Expect(log.frames[0].Box).To(Equal(grid.Box{Left: 0, Top: 0, Right: 2, Bottom: 0}))
		})

		It("flushes the remainder on Flush", func() {
			e := newEngine(anim.Speed(100))
			m.Mark(grid.Cell{X: 4, Y: 4}, maze.Path)
			Expect(e.Refresh()).To(Succeed())
			Expect(e.Frames()).To(Equal(0))

			Expect(e.Flush()).To(Succeed())
			Expect(e.Frames()).To(Equal(1))
			Expect(m.ChangeCount()).To(Equal(0))

			Expect(e.Flush()).To(Succeed())
			Expect(e.Frames()).To(Equal(1))
		})
	})

	It("encodes the dirty rectangle through the colormap", func() {
		e := newEngine(anim.Speed(1000), anim.Delay(7))
		e.SetColormap(map[int]int{maze.Tree: 3})

		m.Mark(grid.Cell{X: 1, Y: 1}, maze.Tree)
		m.Mark(grid.Cell{X: 3, Y: 2}, maze.Path)
		Expect(e.Flush()).To(Succeed())

		g := decode(surface)
		Expect(g.Delay).To(Equal([]int{7}))
		frame := g.Image[0]
		Expect(frame.Bounds()).To(Equal(image.Rect(2+1*cellSize, 1+1*cellSize, 2+4*cellSize, 1+3*cellSize)))

		at := func(cx, cy int) uint8 {
			return frame.ColorIndexAt(offset.X+cx*cellSize+1, offset.Y+cy*cellSize+1)
		}
		Expect(at(1, 1)).To(Equal(uint8(3)))
		Expect(at(3, 2)).To(Equal(uint8(maze.Path)))
		Expect(at(2, 1)).To(Equal(uint8(maze.Wall)))
	})

	It("merges colormap updates", func() {
		e := newEngine()
		e.SetColormap(map[int]int{0: 0, 1: 0})
		e.SetColormap(map[int]int{3: 1})

		Expect(e.Colormap()).To(Equal(map[int]int{0: 0, 1: 0, 2: 2, 3: 1}))
	})

	It("writes the transparent index into the control block", func() {
		e := newEngine(anim.Speed(1), anim.Transparent(3))
		m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
		Expect(e.Refresh()).To(Succeed())

		Expect(e.SetControl(anim.Opaque(), anim.Delay(9))).To(Succeed())
		m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
		Expect(e.Refresh()).To(Succeed())

		data := surface.Export()
		Expect(bytes.Contains(data, gifenc.GraphicControl(anim.DefaultDelay, 3))).To(BeTrue())
		Expect(bytes.Contains(data, gifenc.GraphicControl(9, -1))).To(BeTrue())
	})

	It("pads delay with an invisible pixel", func() {
		e := newEngine(anim.Transparent(2))
		Expect(e.PadDelay(200)).To(Succeed())

		g := decode(surface)
		Expect(g.Image).To(HaveLen(1))
		Expect(g.Image[0].Bounds()).To(Equal(image.Rect(0, 0, 1, 1)))
		Expect(g.Image[0].Pix).To(Equal([]uint8{2}))
		Expect(g.Delay).To(Equal([]int{200}))

		_, _, _, alpha := g.Image[0].Palette[2].RGBA()
		Expect(alpha).To(BeZero())
		Expect(log.frames).To(HaveLen(1))
		Expect(log.frames[0].Pad).To(BeTrue())
		Expect(log.frames[0].Transparent).To(Equal(2))
	})

	It("rejects a transparent index outside the color table", func() {
		_, err := anim.New(surface, m, cellSize, offset, anim.Transparent(4))
		Expect(err).To(MatchError(gifenc.ErrConfiguration))

		e := newEngine(anim.Speed(1), anim.Transparent(3), anim.Delay(7))
		Expect(e.SetControl(anim.Delay(2), anim.Transparent(256))).To(MatchError(gifenc.ErrConfiguration))

		m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
		Expect(e.Refresh()).To(Succeed())
		Expect(log.frames).To(HaveLen(1))
		Expect(log.frames[0].Transparent).To(Equal(3))
		Expect(log.frames[0].Delay).To(Equal(7))
	})

	It("treats a negative transparent index as opaque", func() {
		e := newEngine(anim.Speed(1), anim.Transparent(-5))
		m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
		Expect(e.Refresh()).To(Succeed())
		Expect(log.frames[0].Transparent).To(Equal(-1))
	})

	It("clamps delays to what the control block holds", func() {
		e := newEngine(anim.Speed(1), anim.Delay(70000))
		m.Mark(grid.Cell{X: 0, Y: 0}, maze.Tree)
		Expect(e.Refresh()).To(Succeed())
		Expect(e.PadDelay(-20)).To(Succeed())

		Expect(log.frames).To(HaveLen(2))
		Expect(log.frames[0].Delay).To(Equal(gifenc.MaxDelay))
		Expect(log.frames[1].Delay).To(Equal(0))
		Expect(bytes.Contains(surface.Export(), gifenc.GraphicControl(gifenc.MaxDelay, -1))).To(BeTrue())
	})

	It("declares index 0 transparent when padding without a transparent color", func() {
		e := newEngine()
		Expect(e.PadDelay(50)).To(Succeed())
		Expect(bytes.Contains(surface.Export(), gifenc.GraphicControl(50, 0))).To(BeTrue())
	})

	It("covers the whole grid when no box was tracked", func() {
		d := &dirtyOnly{Maze: m, changes: 1}
		e, err := anim.New(surface, d, cellSize, offset, anim.Speed(1))
		Expect(err).NotTo(HaveOccurred())
		e.Observe(log)
		Expect(e.Refresh()).To(Succeed())

		Expect(log.frames).To(HaveLen(1))
		Expect(log.frames[0].Box).To(Equal(grid.Box{Right: 4, Bottom: 4}))
		Expect(log.frames[0].Rect).To(Equal(image.Rect(2, 1, 17, 16)))
		Expect(log.frames[0].Pad).To(BeFalse())
		Expect(log.frames[0].Transparent).To(Equal(-1))
		Expect(d.changes).To(Equal(0))
	})

	It("reports values the compressor cannot express and keeps the grid dirty", func() {
		e := newEngine(anim.Speed(1))
		m.Mark(grid.Cell{X: 0, Y: 0}, 9)

		err := e.Refresh()
		Expect(err).To(MatchError(gifenc.ErrSymbolRange))
		Expect(m.ChangeCount()).To(Equal(1))
		Expect(surface.Len()).To(BeZero())
	})

	It("reports every frame to observers", func() {
		e := newEngine(anim.Speed(2))
		for x := 0; x < 5; x++ {
			m.Mark(grid.Cell{X: x, Y: 0}, maze.Tree)
			Expect(e.Refresh()).To(Succeed())
		}
		Expect(e.Flush()).To(Succeed())

		Expect(log.frames).To(HaveLen(3))
		total := 0
		for i, f := range log.frames {
			Expect(f.Index).To(Equal(i))
			total += f.Bytes
		}
		Expect(total).To(Equal(surface.Len()))
	})
})
