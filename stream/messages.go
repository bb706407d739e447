package stream

import (
	"github.com/PedroHSSoares-Dev/portfolio/field"
)

// Message types exchanged as JSON text frames. Binary frames carry
// field.Frame encodings.
const (
	TypeInit    = "init"
	TypeStyle   = "style"
	TypePointer = "pointer"
	TypeLeave   = "leave"
	TypeResize  = "resize"
	TypeTheme   = "theme"
)

// StyleMessage is a field.Style in CSS terms.
type StyleMessage struct {
	Type       string  `json:"type"`
	Background string  `json:"background"`
	Line       string  `json:"line"`
	LineAlpha  float64 `json:"lineAlpha"`
	PointSize  float64 `json:"pointSize"`
}

func styleMessage(s field.Style) StyleMessage {
	return StyleMessage{
		Type:       TypeStyle,
		Background: s.Background.Hex(),
		Line:       s.Line.Hex(),
		LineAlpha:  s.LineAlpha,
		PointSize:  s.PointSize,
	}
}

// InitMessage is sent once after the upgrade. Colors and Links index the
// points of every following binary frame.
type InitMessage struct {
	Type   string       `json:"type"`
	Count  int          `json:"count"`
	FPS    int          `json:"fps"`
	Colors []string     `json:"colors"`
	Links  [][2]int     `json:"links"`
	Style  StyleMessage `json:"style"`
}

func initMessage(f *field.Field, style field.Style, fps int) InitMessage {
	msg := InitMessage{
		Type:   TypeInit,
		Count:  f.Len(),
		FPS:    fps,
		Colors: make([]string, 0, f.Len()),
		Links:  make([][2]int, 0, len(f.Connections())),
		Style:  styleMessage(style),
	}
	for _, p := range f.Particles() {
		msg.Colors = append(msg.Colors, p.Color.Hex())
	}
	for _, c := range f.Connections() {
		msg.Links = append(msg.Links, [2]int{c.A, c.B})
	}
	return msg
}

// ClientMessage is anything the browser sends. Fields not used by Type are
// zero.
type ClientMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Theme string  `json:"theme,omitempty"`
}
