// Command gbvmonitor is a terminal UI for single-stepping a video.Core,
// playing the role monitor/main.go plays for the 6502 CPU: instead of a
// disassembly pane it shows the LCD register file, the current scanline's
// mode/coincidence state, and the OAM selection for that line, refreshed on
// every step rather than every instruction.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmglib/gbvideo/config"
	"github.com/dmglib/gbvideo/host"
	"github.com/dmglib/gbvideo/render"
	"github.com/dmglib/gbvideo/video"
)

const cyclesPerStep int32 = 4

type stepTick struct{}

func doStep() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return stepTick{}
	})
}

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	regStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(30)

	oamStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(40)
)

// Monitor is the tea.Model driving a video.Core one machine cycle at a time.
type Monitor struct {
	core   *video.Core
	host   *host.RefHost
	paused bool

	lycInput    textinput.Model
	showingLYC  bool
}

func NewMonitor(core *video.Core, h *host.RefHost) *Monitor {
	ti := textinput.New()
	ti.Placeholder = "LYC value (decimal)"
	ti.CharLimit = 3
	ti.Width = 20
	return &Monitor{core: core, host: h, paused: true, lycInput: ti}
}

func (m Monitor) Init() tea.Cmd { return nil }

func (m *Monitor) step() {
	m.host.SetCPUCycles(m.host.CPUCycles() + cyclesPerStep)
	m.core.ProcessEvents(cyclesPerStep)
}

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTick:
		if m.paused {
			return m, nil
		}
		m.step()
		return m, doStep()

	case tea.KeyMsg:
		if m.showingLYC {
			switch msg.Type {
			case tea.KeyEnter:
				if v, err := strconv.ParseUint(m.lycInput.Value(), 10, 8); err == nil {
					m.core.WriteLYC(uint8(v))
				}
				m.showingLYC = false
				return m, nil
			case tea.KeyEsc:
				m.showingLYC = false
				return m, nil
			}
			var cmd tea.Cmd
			m.lycInput, cmd = m.lycInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if m.paused {
				m.step()
			}
		case "p":
			m.paused = !m.paused
			if !m.paused {
				return m, doStep()
			}
		case "l":
			m.showingLYC = true
			m.lycInput.SetValue("")
			m.lycInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m Monitor) formatRegisters() string {
	return fmt.Sprintf(
		"LY:   %3d\nMode: %d\nSTAT: $%02X\nX:    %3d\nFrame:%6d",
		m.core.LY(), m.core.CurrentMode(), m.core.STAT(), m.core.X(), m.core.FrameCounter(),
	)
}

func (m Monitor) formatOAM() string {
	var b strings.Builder
	objs := m.core.ObjThisLine()
	if len(objs) == 0 {
		b.WriteString("(none selected)\n")
	}
	for i, o := range objs {
		b.WriteString(fmt.Sprintf("%2d: y=%3d x=%3d tile=$%02X attrs=$%02X\n", i, o.Y, o.X, o.Tile, o.Attrs))
	}
	return b.String()
}

func (m Monitor) View() string {
	regs := regStyle.Render(fmt.Sprintf("Video State\n\n%s", m.formatRegisters()))
	oam := oamStyle.Render(fmt.Sprintf("OAM (this line)\n\n%s", m.formatOAM()))

	content := lipgloss.JoinHorizontal(lipgloss.Top, regs, oam)
	help := titleStyle.Render("s: step • p: pause/run • l: set LYC • q: quit")

	if m.showingLYC {
		dialog := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1).
			Width(30).
			Render("Set LYC:\n\n" + m.lycInput.View())
		return lipgloss.JoinVertical(lipgloss.Center, content, help, dialog)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, help)
}

func main() {
	fs := flag.NewFlagSet("gbvmonitor", flag.ExitOnError)
	cfg := config.Register(fs)
	fs.Parse(os.Args[1:])
	if err := cfg.Resolve(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	h := host.NewRefHost(cfg.Model)
	h.SetDoubleSpeed(cfg.DoubleSpeed)

	core := video.NewCore(h)
	core.Reset()
	core.AssociateRenderer(render.NewDummy())
	core.SetFrameskip(cfg.Frameskip)
	core.WriteLCDC(0x91)

	p := tea.NewProgram(NewMonitor(core, h))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
