package collect

// FrameKind selects how a frame is drawn.
type FrameKind int

const (
	FrameBlank    FrameKind = iota // empty screen
	FrameNotice                    // instructions or end-of-phase text
	FrameWord                      // one large encoding word
	FrameFixation                  // fixation cross
	FramePrompt                    // prompt lines plus the live answer
)

// CursorMarker trails the answer text on prompt frames.
const CursorMarker = "_"

// Frame is one screenful of content.
type Frame struct {
	Kind FrameKind
	// Lines are the prompt or notice text, top to bottom.
	Lines []string
	// Input is the answer buffer, shown only on prompt frames.
	Input string
}

// AnswerLine returns the answer row of a prompt frame.
func (f Frame) AnswerLine() string {
	return "Answer: " + f.Input + CursorMarker
}

// Renderer draws frames. Render replaces whatever was on screen.
type Renderer interface {
	Render(f Frame)
}

// Blank returns an empty frame.
func Blank() Frame { return Frame{Kind: FrameBlank} }

// Notice returns a text frame.
func Notice(lines ...string) Frame { return Frame{Kind: FrameNotice, Lines: lines} }

// Word returns a single-word stimulus frame.
func Word(w string) Frame { return Frame{Kind: FrameWord, Lines: []string{w}} }

// Fixation returns the fixation cross frame.
func Fixation() Frame { return Frame{Kind: FrameFixation, Lines: []string{"+"}} }
