package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	keyEscape    = 0x1b
	keyCtrlC     = 3
	keyBackspace = 127
	keyCtrlH     = 8
)

// Reader reads key codes from a terminal, or lines when the input is not one.
type Reader struct {
	in   *os.File
	br   *bufio.Reader
	echo io.Writer
}

// NewReader wraps in. Typed characters are echoed to echo in raw mode.
func NewReader(in *os.File, echo io.Writer) *Reader {
	return &Reader{in: in, br: bufio.NewReader(in), echo: echo}
}

// IsTerminal reports whether the reader is attached to a terminal.
func (r *Reader) IsTerminal() bool {
	return term.IsTerminal(int(r.in.Fd()))
}

// ReadCode returns the next key code: arrow keys come back immediately as
// "arrow_up" and friends, anything else once Enter is pressed.
func (r *Reader) ReadCode() (string, error) {
	if !r.IsTerminal() {
		return readLine(r.br)
	}

	fd := int(r.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()
	return readCode(r.br, r.echo)
}

// readLine reads a line and trims the line ending.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// tryReadArrowKey reads the rest of an escape sequence after ESC. A lone or
// unknown sequence yields "".
func tryReadArrowKey(br io.ByteReader) string {
	b2, err := br.ReadByte()
	if err != nil {
		return "escape"
	}
	// CSI (ESC [) and SS3 (ESC O) sequences
	if b2 != '[' && b2 != 'O' {
		return ""
	}
	b3, err := br.ReadByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return ""
}

// readCode decodes raw-mode bytes from br.
func readCode(br io.ByteReader, echo io.Writer) (string, error) {
	b1, err := br.ReadByte()
	if err != nil {
		return "", err
	}
	switch b1 {
	case keyEscape:
		code := tryReadArrowKey(br)
		fmt.Fprint(echo, "\r\n")
		return code, nil
	case keyCtrlC:
		fmt.Fprint(echo, "\r\n")
		return "ctrl_c", nil
	case '\n', '\r':
		return "", nil
	}

	var input []byte
	b := b1
	for {
		switch {
		case b == '\n' || b == '\r':
			fmt.Fprint(echo, "\r\n")
			return string(input), nil
		case b == keyCtrlC:
			fmt.Fprint(echo, "\r\n")
			return "ctrl_c", nil
		case b == keyEscape:
			// Arrow keys pressed during text entry are discarded.
			tryReadArrowKey(br)
		case b == keyBackspace || b == keyCtrlH:
			if len(input) > 0 {
				input = input[:len(input)-1]
				fmt.Fprint(echo, "\b \b")
			}
		case b >= 32 && b < 127:
			input = append(input, b)
			fmt.Fprint(echo, string(b))
		}

		b, err = br.ReadByte()
		if errors.Is(err, io.EOF) {
			return string(input), nil
		}
		if err != nil {
			return "", err
		}
	}
}
