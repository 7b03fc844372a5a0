package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTick = time.Second / 60
	maxTick = 2 * time.Second
)

type TickMsg time.Time

// Player plays recorded frames back, honoring each frame's delay.
type Player struct {
	title   string
	frames  []Frame
	palette []byte
	pos     int
	playing bool
	speed   float64
	width   int
}

func NewPlayer(title string, frames []Frame, palette []byte) Player {
	return Player{
		title:   title,
		frames:  frames,
		palette: palette,
		playing: true,
		speed:   1,
		width:   80,
	}
}

func (p Player) Init() tea.Cmd {
	return p.tick()
}

func (p Player) tick() tea.Cmd {
	d := minTick
	if p.pos < len(p.frames) {
		d = time.Duration(float64(p.frames[p.pos].Info.Delay) * float64(10*time.Millisecond) / p.speed)
	}
	d = min(max(d, minTick), maxTick)
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.playing = !p.playing
		case "r":
			p.pos, p.playing = 0, true
		case "[", "left", "h":
			p.playing = false
			p.pos = max(p.pos-1, 0)
		case "]", "right", "l":
			p.playing = false
			p.pos = min(p.pos+1, max(len(p.frames)-1, 0))
		case "+", "=":
			p.speed = min(p.speed*2, 64)
		case "-", "_":
			p.speed = max(p.speed/2, 0.125)
		}
	case tea.WindowSizeMsg:
		p.width = msg.Width
	case TickMsg:
		if p.playing {
			if p.pos < len(p.frames)-1 {
				p.pos++
			} else {
				p.playing = false
			}
		}
		return p, p.tick()
	}
	return p, nil
}

// Position returns the index of the frame on screen.
func (p Player) Position() int { return p.pos }

// Playing reports whether playback is running.
func (p Player) Playing() bool { return p.playing }

func (p Player) View() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(p.title)) + "\n")

	if len(p.frames) == 0 {
		s.WriteString(Subtle.Render("nothing recorded") + "\n")
		return s.String()
	}

	f := p.frames[p.pos]
	s.WriteString(RenderGrid(f.Colors, p.palette))

	status := Success.Render("PLAYING")
	if !p.playing {
		status = StatusPaused.Render("PAUSED")
	}
	progress := float64(p.pos+1) / float64(len(p.frames))
	barWidth := min(max(p.width-30, 10), 60)
	s.WriteString(fmt.Sprintf("%s %s %d/%d\n", status, ProgressBar(progress, barWidth), p.pos+1, len(p.frames)))

	kind := "frame"
	if f.Info.Pad {
		kind = "delay"
	}
	stats := lipgloss.JoinVertical(lipgloss.Left,
		Metric("gif frame", fmt.Sprintf("%d (%s)", f.Info.Index, kind)),
		Metric("box", f.Info.Box.String()),
		Metric("bytes", fmt.Sprintf("%d", f.Info.Bytes)),
		Metric("delay", fmt.Sprintf("%d ms", f.Info.Delay*10)),
		Metric("speed", fmt.Sprintf("%gx", p.speed)),
	)
	s.WriteString(Panel.Render(stats) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Restart [ ]:Step +/-:Speed Q:Quit"))
	return s.String()
}
