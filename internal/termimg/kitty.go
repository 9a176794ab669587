// Package termimg renders images inline using the kitty graphics protocol:
// zlib-compressed raw RGBA, base64-encoded, chunked into escape sequences,
// optionally wrapped for tmux passthrough. Terminals without kitty support
// fall back to iTerm2 inline images.
package termimg

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/BourgeoisBear/rasterm"
)

// chunkSize is the kitty protocol's maximum base64 payload per escape
// sequence; larger transfers must be split with the m= continuation flag.
const chunkSize = 4096

// deleteSeq removes all visible kitty images. Idempotent, so it is sent
// both before every draw and on viewer exit.
const deleteSeq = "\x1b_Ga=d,d=A,q=2\x1b\\"

// Supported reports whether the attached terminal can display kitty
// graphics at all.
func Supported() bool {
	return rasterm.IsKittyCapable()
}

// ItermSupported reports whether the terminal understands iTerm2 inline
// images, the fallback when kitty graphics are unavailable.
func ItermSupported() bool {
	return rasterm.IsItermCapable()
}

// InTmux reports whether escape sequences must be wrapped in the tmux
// passthrough envelope to reach the real terminal.
func InTmux() bool {
	return rasterm.IsTmuxScreen()
}

// WrapTmux wraps a single escape sequence in the tmux DCS passthrough
// envelope, doubling every literal ESC in the payload per tmux's escaping
// rule. Pure transform over the inner sequence.
func WrapTmux(seq string) string {
	var b strings.Builder
	b.Grow(len(seq)*2 + 10)
	b.WriteString("\x1bPtmux;")
	for i := 0; i < len(seq); i++ {
		if seq[i] == 0x1b {
			b.WriteByte(0x1b)
		}
		b.WriteByte(seq[i])
	}
	b.WriteString("\x1b\\")
	return b.String()
}

// Encode builds the full kitty transmit+display escape sequences for a
// pre-resized RGBA image occupying cols x rows terminal cells. The first
// sequence carries the geometry and format flags; every sequence but the
// last is flagged m=1 (more data follows).
func Encode(img *image.RGBA, cols, rows int) ([]string, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, 6)
	if err != nil {
		return nil, fmt.Errorf("init compressor: %w", err)
	}
	if _, err := zw.Write(img.Pix); err != nil {
		return nil, fmt.Errorf("compress pixels: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flush compressor: %w", err)
	}

	payload := base64.StdEncoding.EncodeToString(compressed.Bytes())
	chunks := splitChunks(payload, chunkSize)

	seqs := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		more := 1
		if i == len(chunks)-1 {
			more = 0
		}
		if i == 0 {
			// a=T transmit+display, f=32 raw RGBA, o=z zlib, t=d direct,
			// s/v source pixels, c/r target cells, q=2 suppress responses
			seqs = append(seqs, fmt.Sprintf(
				"\x1b_Ga=T,f=32,t=d,m=%d,q=2,o=z,s=%d,v=%d,c=%d,r=%d;%s\x1b\\",
				more, w, h, cols, rows, chunk))
		} else {
			seqs = append(seqs, fmt.Sprintf("\x1b_Gm=%d;%s\x1b\\", more, chunk))
		}
	}
	return seqs, nil
}

func splitChunks(s string, size int) []string {
	if s == "" {
		return []string{""}
	}
	chunks := make([]string, 0, (len(s)+size-1)/size)
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}

// Renderer writes inline graphics to a terminal, applying the tmux
// passthrough envelope when needed. Iterm selects the iTerm2 inline-image
// fallback for terminals without kitty graphics.
type Renderer struct {
	Out   io.Writer
	Tmux  bool
	Iterm bool
}

// NewRenderer returns a renderer for w, probing the protocol and tmux from
// the environment.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		Out:   w,
		Tmux:  InTmux(),
		Iterm: !Supported() && ItermSupported(),
	}
}

// Clear deletes any image currently on display. iTerm inline images occupy
// ordinary cells, so the screen clear on redraw already removes them.
func (r *Renderer) Clear() error {
	if r.Iterm {
		return nil
	}
	return r.writeSeq(deleteSeq)
}

// Draw clears previous graphics, positions the cursor at the frame origin
// and transmits the image as a chunked transfer. The caller flushes its
// writer afterwards so the terminal renders the frame atomically.
func (r *Renderer) Draw(img *image.RGBA, f Frame) error {
	if err := r.Clear(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Out, "\x1b[%d;%dH", f.Row, f.Col); err != nil {
		return err
	}
	if r.Iterm {
		return rasterm.ItermWriteImage(r.Out, img)
	}
	seqs, err := Encode(img, f.Cols, f.Rows)
	if err != nil {
		return err
	}
	for _, seq := range seqs {
		if err := r.writeSeq(seq); err != nil {
			return err
		}
	}
	return nil
}

// writeSeq emits one escape sequence, wrapped for tmux when required.
// Cursor positioning goes through tmux untouched; only the graphics
// sequences would be intercepted.
func (r *Renderer) writeSeq(seq string) error {
	if r.Tmux {
		seq = WrapTmux(seq)
	}
	_, err := io.WriteString(r.Out, seq)
	return err
}
