package domstate

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a Root over a parsed HTML tree.
type Document struct {
	root *html.Node
}

// ParseDocument parses a full HTML document.
func ParseDocument(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("domstate: parse document: %w", err)
	}
	return &Document{root: n}, nil
}

// NewDocument wraps n. Only the descendants of n are searched, never n itself.
func NewDocument(n *html.Node) *Document {
	return &Document{root: n}
}

// Node returns the wrapped node.
func (d *Document) Node() *html.Node { return d.root }

// ElementsWithAttr returns the descendant elements carrying name, in document order.
func (d *Document) ElementsWithAttr(name string) []Element {
	var out []Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				if _, ok := attr(c, name); ok {
					out = append(out, &HTMLElement{n: c})
				}
			}
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// Find returns the first descendant element whose attribute name equals value.
func (d *Document) Find(name, value string) (*HTMLElement, bool) {
	for _, el := range d.ElementsWithAttr(name) {
		if v, _ := el.Attr(name); v == value {
			return el.(*HTMLElement), true
		}
	}
	return nil, false
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// HTMLElement adapts an *html.Node element to Element, with the value and
// checked semantics of form controls.
type HTMLElement struct {
	n *html.Node
}

// NewElement wraps an element node.
func NewElement(n *html.Node) *HTMLElement { return &HTMLElement{n: n} }

// Node returns the wrapped node.
func (e *HTMLElement) Node() *html.Node { return e.n }

func (e *HTMLElement) Attr(name string) (string, bool) { return attr(e.n, name) }

func (e *HTMLElement) Value() (string, bool) {
	switch e.n.DataAtom {
	case atom.Textarea, atom.Output:
		return textContent(e.n), true
	case atom.Select:
		return selectValue(e.n), true
	case atom.Option:
		return optionValue(e.n), true
	case atom.Input:
		if v, ok := attr(e.n, "value"); ok {
			return v, true
		}
		if t, _ := attr(e.n, "type"); strings.EqualFold(t, "checkbox") || strings.EqualFold(t, "radio") {
			return "on", true
		}
		return "", true
	case atom.Button, atom.Data, atom.Param:
		v, _ := attr(e.n, "value")
		return v, true
	}
	return "", false
}

func (e *HTMLElement) SetValue(v string) bool {
	switch e.n.DataAtom {
	case atom.Textarea, atom.Output:
		setText(e.n, v)
	case atom.Select:
		for _, opt := range options(e.n) {
			if optionValue(opt) == v {
				setAttr(opt, "selected", "")
			} else {
				removeAttr(opt, "selected")
			}
		}
	case atom.Input, atom.Button, atom.Data, atom.Param, atom.Option:
		setAttr(e.n, "value", v)
	default:
		return false
	}
	return true
}

func (e *HTMLElement) Checked() (bool, bool) {
	if e.n.DataAtom != atom.Input {
		return false, false
	}
	_, ok := attr(e.n, "checked")
	return ok, true
}

func (e *HTMLElement) SetChecked(v bool) bool {
	if e.n.DataAtom != atom.Input {
		return false
	}
	if v {
		setAttr(e.n, "checked", "")
	} else {
		removeAttr(e.n, "checked")
	}
	return true
}

func (e *HTMLElement) InnerMarkup() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func (e *HTMLElement) SetInnerMarkup(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return fmt.Errorf("domstate: parse markup: %w", err)
	}
	removeChildren(e.n)
	for _, c := range nodes {
		e.n.AppendChild(c)
	}
	return nil
}

func (e *HTMLElement) Display() string {
	style, _ := attr(e.n, "style")
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(prop), "display") {
			return strings.ToLower(strings.TrimSpace(val))
		}
	}
	return ""
}

func (e *HTMLElement) SetDisplay(v string) {
	style, _ := attr(e.n, "style")
	var decls []string
	for _, decl := range strings.Split(style, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		prop, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "display") {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if v != "" {
		decls = append(decls, "display: "+v)
	}
	if len(decls) == 0 {
		removeAttr(e.n, "style")
		return
	}
	setAttr(e.n, "style", strings.Join(decls, "; ")+";")
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}

func removeAttr(n *html.Node, name string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func setText(n *html.Node, s string) {
	removeChildren(n)
	if s != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func options(sel *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(sel)
	return out
}

func optionValue(opt *html.Node) string {
	if v, ok := attr(opt, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(opt))
}

// selectValue is the value of the first selected option, falling back to the
// first option like a single-choice select does.
func selectValue(sel *html.Node) string {
	opts := options(sel)
	for _, opt := range opts {
		if _, ok := attr(opt, "selected"); ok {
			return optionValue(opt)
		}
	}
	if len(opts) > 0 {
		return optionValue(opts[0])
	}
	return ""
}
