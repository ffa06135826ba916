package collect

// Buffer is the answer being typed.
type Buffer struct {
	runes []rune
}

// NewBuffer returns a buffer holding initial.
func NewBuffer(initial string) *Buffer {
	return &Buffer{runes: []rune(initial)}
}

// Append adds one character.
func (b *Buffer) Append(s string) {
	b.runes = append(b.runes, []rune(s)...)
}

// Space appends a literal space.
func (b *Buffer) Space() {
	b.runes = append(b.runes, ' ')
}

// DeleteLast removes the last character. No-op when empty.
func (b *Buffer) DeleteLast() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.runes)
}
