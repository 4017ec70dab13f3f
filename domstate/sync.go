// Package domstate saves and restores selected element state (value, checked,
// inner markup, visibility) through the active implementation of a salstore.Registry.
//
// Elements are discovered by an identifier attribute (default data-chasstorage-id)
// whose value keys the element's record. An optional directive attribute (default
// data-chasstorage-conf, see ParseConfig) narrows which fields are kept.
package domstate

import (
	"context"
	"errors"

	"github.com/khicago/salstore"
)

// Default attribute names.
const (
	DefaultIDAttribute     = "data-chasstorage-id"
	DefaultConfigAttribute = "data-chasstorage-conf"
)

// ErrNoRoot is returned when neither a root nor a default document is given.
var ErrNoRoot = errors.New("domstate: no root element")

// Element is the live state of one element.
type Element interface {
	Attr(name string) (string, bool)

	// Value reports false when the element has no value concept.
	Value() (string, bool)
	SetValue(v string) bool

	// Checked reports false when the element has no checked concept.
	Checked() (bool, bool)
	SetChecked(v bool) bool

	InnerMarkup() string
	SetInnerMarkup(markup string) error

	// Display is the inline display style ("" when unset).
	Display() string
	SetDisplay(v string)
}

// Root finds the elements below it that carry an attribute.
type Root interface {
	ElementsWithAttr(name string) []Element
}

// SyncOption customizes a Synchronizer.
type SyncOption func(*Synchronizer)

// WithIDAttribute sets the attribute whose value keys an element's record.
func WithIDAttribute(name string) SyncOption {
	return func(s *Synchronizer) {
		if name != "" {
			s.idAttr = name
		}
	}
}

// WithConfigAttribute sets the attribute holding an element's directive.
func WithConfigAttribute(name string) SyncOption {
	return func(s *Synchronizer) {
		if name != "" {
			s.confAttr = name
		}
	}
}

// WithDocument sets the root used when Save or Load get a nil root.
func WithDocument(root Root) SyncOption {
	return func(s *Synchronizer) {
		s.document = root
	}
}

// WithLogger specifies a logger for operation logging.
func WithLogger(logger salstore.Logger) SyncOption {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLogTag sets a tag prefix for all log messages.
func WithLogTag(tag string) SyncOption {
	return func(s *Synchronizer) {
		s.logTag = tag
	}
}

// Synchronizer captures and restores element state through the active
// implementation of a Registry. It keeps no state of its own between calls.
type Synchronizer struct {
	registry *salstore.Registry
	idAttr   string
	confAttr string
	document Root
	logger   salstore.Logger
	logTag   string
}

// NewSynchronizer creates a Synchronizer over reg.
func NewSynchronizer(reg *salstore.Registry, opts ...SyncOption) *Synchronizer {
	if reg == nil {
		reg = salstore.NewRegistry()
	}
	s := &Synchronizer{
		registry: reg,
		idAttr:   DefaultIDAttribute,
		confAttr: DefaultConfigAttribute,
		logger:   salstore.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synchronizer) logf(level string, ctx context.Context, format string, args ...interface{}) {
	salstore.Logf(s.logger, s.logTag, level, ctx, format, args...)
}

// IDAttribute returns the identifier attribute name.
func (s *Synchronizer) IDAttribute() string { return s.idAttr }

// ConfigAttribute returns the directive attribute name.
func (s *Synchronizer) ConfigAttribute() string { return s.confAttr }

// Stored returns the DOM snapshot currently held by the active implementation.
func (s *Synchronizer) Stored(ctx context.Context) (salstore.DOMSnapshot, error) {
	return s.registry.Current().LoadDOMData(ctx)
}

func (s *Synchronizer) root(root Root) (Root, error) {
	if root != nil {
		return root, nil
	}
	if s.document != nil {
		return s.document, nil
	}
	return nil, ErrNoRoot
}

func (s *Synchronizer) config(el Element) Config {
	conf, _ := el.Attr(s.confAttr)
	return ParseConfig(conf)
}

// Save merges the selected state of every identified element below root into
// the stored DOM snapshot. Records of elements not visited are left alone.
// It does nothing while the active implementation is unavailable.
func (s *Synchronizer) Save(ctx context.Context, root Root) error {
	impl := s.registry.Current()
	if !impl.IsAvailable() {
		return nil
	}
	root, err := s.root(root)
	if err != nil {
		return err
	}

	data, err := impl.LoadDOMData(ctx)
	if err != nil {
		s.logf("error", ctx, "Save: LoadDOMData via %s failed: %v", impl.Name(), err)
		return err
	}
	if data == nil {
		data = salstore.DOMSnapshot{}
	}

	elements := root.ElementsWithAttr(s.idAttr)
	for _, el := range elements {
		id, _ := el.Attr(s.idAttr)
		data[id] = capture(el, s.config(el), data[id])
	}

	if err := impl.SaveDOMData(ctx, data); err != nil {
		s.logf("error", ctx, "Save: SaveDOMData via %s failed: %v", impl.Name(), err)
		return err
	}
	s.logf("debug", ctx, "Save via %s: %d elements", impl.Name(), len(elements))
	return nil
}

// Load applies stored state to every identified element below root, for the
// fields its directive selects. A stored visible=false hides the element;
// visible=true never shows it.
// It does nothing while the active implementation is unavailable.
func (s *Synchronizer) Load(ctx context.Context, root Root) error {
	impl := s.registry.Current()
	if !impl.IsAvailable() {
		return nil
	}
	root, err := s.root(root)
	if err != nil {
		return err
	}

	data, err := impl.LoadDOMData(ctx)
	if err != nil {
		s.logf("error", ctx, "Load: LoadDOMData via %s failed: %v", impl.Name(), err)
		return err
	}

	for _, el := range root.ElementsWithAttr(s.idAttr) {
		id, _ := el.Attr(s.idAttr)
		rec, ok := data[id]
		if !ok {
			continue
		}
		if err := restore(el, s.config(el), rec); err != nil {
			s.logf("warn", ctx, "Load: restore %s failed: %v", id, err)
		}
	}
	return nil
}

func capture(el Element, conf Config, rec salstore.DOMRecord) salstore.DOMRecord {
	if v, ok := el.Value(); ok && conf.Value {
		rec.Value = &v
	}
	if c, ok := el.Checked(); ok && conf.Checked {
		rec.Checked = &c
	}
	if conf.InnerMarkup {
		m := el.InnerMarkup()
		rec.InnerMarkup = &m
	}
	if conf.Visible {
		visible := el.Display() != "none"
		rec.Visible = &visible
	}
	return rec
}

func restore(el Element, conf Config, rec salstore.DOMRecord) error {
	var err error
	if rec.Value != nil && conf.Value {
		el.SetValue(*rec.Value)
	}
	if rec.Checked != nil && conf.Checked {
		el.SetChecked(*rec.Checked)
	}
	if rec.InnerMarkup != nil && conf.InnerMarkup {
		err = el.SetInnerMarkup(*rec.InnerMarkup)
	}
	if rec.Visible != nil && conf.Visible && !*rec.Visible {
		el.SetDisplay("none")
	}
	return err
}
