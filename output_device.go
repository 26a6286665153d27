package roadnet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

const (
	outputPrecision    = 2
	geoOutputPrecision = 6
	indentUnit         = "    "
)

var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

// outputDevice writes XML elements with attributes in exactly the order they are given.
// The first write error is kept and every further write is skipped.
type outputDevice struct {
	w     *bufio.Writer
	stack []string
	err   error
}

func newOutputDevice(w io.Writer) *outputDevice {
	return &outputDevice{
		w:     bufio.NewWriter(w),
		stack: make([]string, 0),
	}
}

func (dev *outputDevice) write(s string) {
	if dev.err != nil {
		return
	}
	_, dev.err = dev.w.WriteString(s)
}

func (dev *outputDevice) indent() string {
	return strings.Repeat(indentUnit, len(dev.stack))
}

// writeXMLHeader writes declaration and opens root element
func (dev *outputDevice) writeXMLHeader(root string) {
	dev.write("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n\n")
	dev.write("<" + root + ">\n")
	dev.stack = append(dev.stack, root)
}

// openTag starts element. It has to be finished by either closeEmpty or endOpen + closeTag
func (dev *outputDevice) openTag(name string) *outputDevice {
	dev.write(dev.indent() + "<" + name)
	dev.stack = append(dev.stack, name)
	return dev
}

func (dev *outputDevice) attr(key, value string) *outputDevice {
	dev.write(" " + key + "=\"" + attrEscaper.Replace(value) + "\"")
	return dev
}

func (dev *outputDevice) attrInt(key string, value int) *outputDevice {
	return dev.attr(key, strconv.Itoa(value))
}

func (dev *outputDevice) attrFloat(key string, value float64) *outputDevice {
	return dev.attr(key, formatFloat(value))
}

// endOpen finishes start tag of element which has children
func (dev *outputDevice) endOpen() {
	dev.write(">\n")
}

// closeEmpty finishes element without children
func (dev *outputDevice) closeEmpty() {
	dev.write("/>\n")
	dev.stack = dev.stack[:len(dev.stack)-1]
}

// closeTag writes end tag of the innermost open element
func (dev *outputDevice) closeTag() {
	name := dev.stack[len(dev.stack)-1]
	dev.stack = dev.stack[:len(dev.stack)-1]
	dev.write(dev.indent() + "</" + name + ">\n")
}

// raw writes given lines verbatim, indented to the current level
func (dev *outputDevice) raw(body string) {
	if body == "" {
		return
	}
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		dev.write(dev.indent() + line + "\n")
	}
}

func (dev *outputDevice) blankLine() {
	dev.write("\n")
}

// close finishes every open element and flushes buffered output
func (dev *outputDevice) close() error {
	for len(dev.stack) > 0 {
		dev.closeTag()
	}
	if dev.err != nil {
		return dev.err
	}
	return dev.w.Flush()
}

// flush writes buffered output without closing elements
func (dev *outputDevice) flush() error {
	if dev.err != nil {
		return dev.err
	}
	return dev.w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', outputPrecision, 64)
}

func formatPoint(pt orb.Point) string {
	return formatFloat(pt.X()) + "," + formatFloat(pt.Y())
}

// formatShape returns "x,y x,y ..." representation of the line
func formatShape(line orb.LineString) string {
	pts := make([]string, len(line))
	for i, pt := range line {
		pts[i] = formatPoint(pt)
	}
	return strings.Join(pts, " ")
}

// formatBound returns "xmin,ymin,xmax,ymax" representation of the bound
func formatBound(b orb.Bound, precision int) string {
	return fmt.Sprintf("%.*f,%.*f,%.*f,%.*f", precision, b.Min.X(), precision, b.Min.Y(), precision, b.Max.X(), precision, b.Max.Y())
}
