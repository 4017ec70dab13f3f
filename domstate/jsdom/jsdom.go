//go:build js && wasm

// Package jsdom adapts the live browser DOM to domstate.Root and domstate.Element.
package jsdom

import (
	"syscall/js"

	"github.com/khicago/salstore/domstate"
)

// Node is a Root over a DOM node (document or element).
type Node struct {
	v js.Value
}

// Document returns the page document.
func Document() Node { return Node{v: js.Global().Get("document")} }

// Wrap wraps an existing DOM node.
func Wrap(v js.Value) Node { return Node{v: v} }

func (n Node) ElementsWithAttr(name string) []domstate.Element {
	list := n.v.Call("querySelectorAll", "*["+name+"]")
	out := make([]domstate.Element, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, Element{v: list.Index(i)})
	}
	return out
}

// Element adapts a DOM element.
type Element struct {
	v js.Value
}

var reflectHas = js.Global().Get("Reflect").Get("has")

func (e Element) has(prop string) bool {
	return reflectHas.Invoke(e.v, prop).Bool()
}

func (e Element) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e Element) Value() (string, bool) {
	if !e.has("value") {
		return "", false
	}
	return e.v.Get("value").String(), true
}

func (e Element) SetValue(v string) bool {
	if !e.has("value") {
		return false
	}
	e.v.Set("value", v)
	return true
}

func (e Element) Checked() (bool, bool) {
	if !e.has("checked") {
		return false, false
	}
	return e.v.Get("checked").Truthy(), true
}

func (e Element) SetChecked(v bool) bool {
	if !e.has("checked") {
		return false
	}
	e.v.Set("checked", v)
	return true
}

func (e Element) InnerMarkup() string { return e.v.Get("innerHTML").String() }

func (e Element) SetInnerMarkup(markup string) error {
	e.v.Set("innerHTML", markup)
	return nil
}

func (e Element) Display() string { return e.v.Get("style").Get("display").String() }

func (e Element) SetDisplay(v string) { e.v.Get("style").Set("display", v) }
