// Package tui provides the interactive terminal front end for pixel2wav
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pixel2wav/pixel2wav/pkg/sonify"
	"github.com/pixel2wav/pixel2wav/pkg/sonify/synth"
	"github.com/pixel2wav/pixel2wav/pkg/wavio"
)

// Palette runs violet to amber, the two ends of the hue-to-pitch wheel.
var (
	violet = lipgloss.Color("#9D4EDD")
	amber  = lipgloss.Color("#FFB703")
	faint  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(violet).
			Background(lipgloss.Color("#333333")).
			Padding(0, 2).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().Foreground(violet).Bold(true).PaddingLeft(2)
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).PaddingLeft(2)
	detailStyle = lipgloss.NewStyle().Foreground(amber).PaddingLeft(4)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(violet).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(faint).MarginTop(1)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(violet).
			Padding(1, 2)
)

// step is the screen the model is currently showing
type step int

const (
	stepMenu step = iota
	stepVoice
	stepPicker
	stepRender
	stepDone
)

type menuEntry struct {
	title  string
	detail string
	demo   bool
	quit   bool
}

var menu = []menuEntry{
	{title: "Sonify an image", detail: "Pick a voice strategy and an image, render it to WAV"},
	{title: "Render demo track", detail: "The built-in score: every voice, every note length", demo: true},
	{title: "Quit", detail: "Leave pixel2wav", quit: true},
}

// Model is the bubbletea model for the whole session
type Model struct {
	step      step
	cursor    int
	voiceIdx  int
	picker    filepicker.Model
	spin      spinner.Model
	imagePath string
	demo      bool

	// result of the last render
	outPath string
	notes   int
	seconds float64
	err     error
}

// doneMsg carries the outcome of a background render
type doneMsg struct {
	outPath string
	notes   int
	seconds float64
	err     error
}

// New builds a model starting at the main menu
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
	fp.CurrentDirectory, _ = os.Getwd()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(amber)

	// Default strategy is hue, same as the CLI.
	voiceIdx := 0
	for i, name := range sonify.VoiceNames() {
		if name == sonify.DefaultOptions().Voice.String() {
			voiceIdx = i
		}
	}

	return Model{picker: fp, spin: sp, voiceIdx: voiceIdx}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The picker wants every message while it is on screen.
	if m.step == stepPicker {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				m.step = stepVoice
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if picked, path := m.picker.DidSelectFile(msg); picked {
			m.imagePath = path
			m.step = stepRender
			return m, tea.Batch(m.spin.Tick, m.render())
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.picker.SetHeight(msg.Height - 10)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case doneMsg:
		m.step = stepDone
		m.outPath = msg.outPath
		m.notes = msg.notes
		m.seconds = msg.seconds
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "q" || key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.step {
	case stepMenu:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menu)-1 {
				m.cursor++
			}
		case "enter":
			entry := menu[m.cursor]
			if entry.quit {
				return m, tea.Quit
			}
			m.demo = entry.demo
			if m.demo {
				m.step = stepRender
				return m, tea.Batch(m.spin.Tick, m.render())
			}
			m.step = stepVoice
		}

	case stepVoice:
		names := sonify.VoiceNames()
		switch key {
		case "up", "k":
			if m.voiceIdx > 0 {
				m.voiceIdx--
			}
		case "down", "j":
			if m.voiceIdx < len(names)-1 {
				m.voiceIdx++
			}
		case "esc":
			m.step = stepMenu
		case "enter":
			m.step = stepPicker
			return m, m.picker.Init()
		}

	case stepDone:
		if key == "enter" || key == "esc" {
			m = resetResult(m)
		}
	}

	return m, nil
}

func resetResult(m Model) Model {
	m.step = stepMenu
	m.demo = false
	m.imagePath = ""
	m.outPath = ""
	m.notes = 0
	m.seconds = 0
	m.err = nil
	return m
}

// render runs the pipeline off the update loop and reports a doneMsg
func (m Model) render() tea.Cmd {
	demo := m.demo
	imagePath := m.imagePath
	voiceName := sonify.VoiceNames()[m.voiceIdx]

	return func() tea.Msg {
		opts := sonify.DefaultOptions()
		if !demo {
			voice, err := sonify.ParseVoice(voiceName)
			if err != nil {
				return doneMsg{err: err}
			}
			opts.Voice = voice
		}
		son := sonify.New(synth.NewEngine(), opts)

		var (
			notes   []sonify.TimedNote
			outPath string
			err     error
		)
		if demo {
			outPath = "demo.wav"
			notes, err = son.ComposeDemo()
		} else {
			outPath = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".wav"
			var pixels []sonify.Pixel
			if pixels, err = sonify.LoadPixels(imagePath); err == nil {
				notes, err = son.Compose(pixels)
			}
		}
		if err != nil {
			return doneMsg{err: err}
		}

		samples, err := son.Render(notes)
		if err != nil {
			return doneMsg{err: err}
		}
		if err := wavio.WriteFile(outPath, samples, opts.SampleRate); err != nil {
			return doneMsg{err: err}
		}

		return doneMsg{
			outPath: outPath,
			notes:   len(notes),
			seconds: sonify.TotalDuration(notes),
		}
	}
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(banner())
	b.WriteString("\n")

	switch m.step {
	case stepMenu:
		b.WriteString(m.viewList(" PIXEL2WAV ", menuTitles(), menuDetails(), m.cursor))
	case stepVoice:
		names := sonify.VoiceNames()
		details := make([]string, len(names))
		for i, name := range names {
			details[i] = sonify.DescribeVoice(name)
		}
		b.WriteString(m.viewList(" VOICE STRATEGY ", names, details, m.voiceIdx))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc: back"))
	case stepPicker:
		b.WriteString(titleStyle.Render(" PICK AN IMAGE "))
		b.WriteString("\n\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc: back"))
	case stepRender:
		b.WriteString(m.viewRender())
	case stepDone:
		b.WriteString(m.viewDone())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter select • q quit"))
	return b.String()
}

func menuTitles() []string {
	titles := make([]string, len(menu))
	for i, e := range menu {
		titles[i] = e.title
	}
	return titles
}

func menuDetails() []string {
	details := make([]string, len(menu))
	for i, e := range menu {
		details[i] = e.detail
	}
	return details
}

func (m Model) viewList(title string, rows, details []string, cursor int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, row := range rows {
		if i == cursor {
			b.WriteString(cursorStyle.Render("▸ " + row))
			b.WriteString("\n")
			b.WriteString(detailStyle.Render(details[i]))
		} else {
			b.WriteString(rowStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}
	return frameStyle.Render(b.String())
}

func (m Model) viewRender() string {
	subject := "demo score"
	if !m.demo {
		subject = filepath.Base(m.imagePath)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(" RENDERING "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s sonifying %s\n", m.spin.View(), subject)
	b.WriteString(detailStyle.Render("hue → pitch, saturation → loudness, value → length"))
	return frameStyle.Render(b.String())
}

func (m Model) viewDone() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(titleStyle.Render(" FAILED "))
		b.WriteString("\n\n")
		b.WriteString(failStyle.Render("✗ " + m.err.Error()))
	} else {
		b.WriteString(titleStyle.Render(" DONE "))
		b.WriteString("\n\n")
		b.WriteString(okStyle.Render("✓ " + filepath.Base(m.outPath)))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%d notes, %.1f seconds", m.notes, m.seconds)
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: back to menu"))
	return frameStyle.Render(b.String())
}

func banner() string {
	logo := `
   ____   ___ __  __ _____  _      ____  __        __    _    __     __
  |  _ \ |_ _|\ \/ /| ____|| |    |___ \ \ \      / /   / \   \ \   / /
  | |_) | | |  \  / |  _|  | |      __) | \ \ /\ / /   / _ \   \ \ / /
  |  __/  | |  /  \ | |___ | |___  / __/   \ V  V /   / ___ \   \ V /
  |_|    |___|/_/\_\|_____||_____||_____|   \_/\_/   /_/   \_\   \_/
`
	return lipgloss.NewStyle().Foreground(violet).Render(logo)
}

// Run starts the interactive session in the alternate screen
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
