// Package console prints menu trees to a terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	ct "github.com/daviddengcn/go-colortext"

	"github.com/manifold/shortcuttray/pkg/menu"
)

type Console struct {
	Output  io.Writer
	Padding int
	// Color switches terminal colors on. go-colortext writes its escape
	// codes to stdout, so leave it off when Output is anything else.
	Color bool

	sync.Mutex
}

func New(w io.Writer, color bool) *Console {
	return &Console{Output: w, Padding: 11, Color: color}
}

func kindColor(e *menu.Entry) ct.Color {
	switch {
	case e.Kind == menu.KindFolder:
		return ct.Cyan
	case e.Kind == menu.KindOpenFolder:
		return ct.Blue
	case e.Kind.Launchable() && e.Icon == nil:
		return ct.Yellow
	case e.Kind == menu.KindExit:
		return ct.Red
	}
	return ct.White
}

// WriteTree prints one line per entry, indented by depth. Shortcuts without
// an icon are flagged.
func (c *Console) WriteTree(entries []*menu.Entry) {
	menu.Walk(entries, func(e *menu.Entry, depth int) bool {
		indent := strings.Repeat("  ", depth)
		switch e.Kind {
		case menu.KindSeparator:
			c.WriteLine("", indent+"----", ct.None, false)
			return true
		case menu.KindFolder:
			c.WriteLine(e.Kind.String(), indent+e.Label+"/", kindColor(e), false)
			return true
		}
		right := indent + e.Label
		if e.Target != "" {
			right += "  -> " + e.Target
		}
		if e.Kind.Launchable() && e.Icon == nil {
			right += "  (no icon)"
		}
		c.WriteLine(e.Kind.String(), right, kindColor(e), e.Kind.Launchable() && e.Icon == nil)
		return true
	})
}

// Dump writes the raw entries.
func (c *Console) Dump(entries []*menu.Entry) {
	c.Lock()
	defer c.Unlock()
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, MaxDepth: 8}
	cfg.Fdump(c.Output, entries)
}

// WriteLine writes out a single coloured line
func (c *Console) WriteLine(left, right string, leftC ct.Color, isError bool) {
	c.Lock()
	defer c.Unlock()

	if c.Color {
		ct.ChangeColor(leftC, true, ct.None, false)
	}
	formatter := fmt.Sprintf("%%-%ds | ", c.Padding)
	fmt.Fprintf(c.Output, formatter, left)

	if c.Color {
		if isError {
			ct.ChangeColor(ct.Yellow, false, ct.None, false)
		} else {
			ct.ResetColor()
		}
	}
	fmt.Fprintln(c.Output, right)
	if c.Color && isError {
		ct.ResetColor()
	}
}
