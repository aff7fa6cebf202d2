package schematic

import (
	"fmt"

	"github.com/bson/filtergen/pkg/geom"
)

// DeviceKind identifies what a component is. Behavior that varies by kind
// lives in the capability table, not in separate types.
type DeviceKind int

// Device kinds.
const (
	KindResistor DeviceKind = iota + 1
	KindCapacitor
	KindInductor
	KindLED
	KindDiode
	KindOpAmp
	KindPower
	KindVoltageSource
)

// Terminal names an extra connection point beyond Pin1 and Pin2.
type Terminal int

// Op-amp terminals.
const (
	TerminalInP  Terminal = iota + 1 // non-inverting input
	TerminalPwrP                     // positive supply
	TerminalPwrM                     // negative supply
)

// passiveSize is the distance from a two-terminal part's anchor to each
// of its pins.
const passiveSize = 100

// simOpAmpSymbol is the symbol used for op-amps in simulation sheets.
const simOpAmpSymbol = "linear:LM321"

type pinRule func(pos geom.Point, o geom.Orientation) (pin1, pin2 geom.Point)

type capability struct {
	name      string
	prefix    string
	library   string
	spice     string
	labelGap  int
	valued    bool // appears in the parts list
	pins      pinRule
	terminals map[Terminal]geom.Point
}

var capabilities = map[DeviceKind]capability{
	KindResistor:  {name: "resistor", prefix: "R", library: "device:R_Small", spice: "R", labelGap: 30, valued: true, pins: passivePins},
	KindCapacitor: {name: "capacitor", prefix: "C", library: "device:C_Small", spice: "C", labelGap: 60, valued: true, pins: passivePins},
	KindInductor:  {name: "inductor", prefix: "L", library: "device:L_Small", spice: "L", labelGap: 0, valued: true, pins: passivePins},
	KindLED:       {name: "led", prefix: "D", library: "device:LED_Small", spice: "D", labelGap: 50, valued: true, pins: passivePins},
	KindDiode:     {name: "diode", prefix: "D", library: "device:D_Small", spice: "D", labelGap: 50, valued: true, pins: passivePins},
	KindOpAmp: {
		name:   "opamp",
		prefix: "U",
		spice:  "X",
		pins: func(pos geom.Point, _ geom.Orientation) (geom.Point, geom.Point) {
			return pos.Add(geom.Pt(-300, 100)), pos.Add(geom.Pt(300, 0))
		},
		terminals: map[Terminal]geom.Point{
			TerminalInP:  geom.Pt(-300, -100),
			TerminalPwrP: geom.Pt(-100, -300),
			TerminalPwrM: geom.Pt(-100, 300),
		},
	},
	KindPower: {
		name:   "power",
		prefix: "#PWR",
		pins: func(pos geom.Point, _ geom.Orientation) (geom.Point, geom.Point) {
			return pos, pos
		},
	},
	KindVoltageSource: {
		name:    "vsource",
		prefix:  "V",
		library: "pspice:VSOURCE",
		spice:   "V",
		pins: func(pos geom.Point, _ geom.Orientation) (geom.Point, geom.Point) {
			return pos.Add(geom.Pt(0, 300)), pos.Add(geom.Pt(0, -300))
		},
	},
}

func passivePins(pos geom.Point, o geom.Orientation) (geom.Point, geom.Point) {
	axis := o.Axis(passiveSize)
	return pos.Sub(axis), pos.Add(axis)
}

func (k DeviceKind) String() string {
	if c, ok := capabilities[k]; ok {
		return c.name
	}
	return fmt.Sprintf("DeviceKind(%d)", int(k))
}

// Prefix returns the reference designator prefix for the kind, e.g. "R".
func (k DeviceKind) Prefix() string {
	return capabilities[k].prefix
}

// Valued reports whether components of this kind carry a part value that
// belongs in a parts list.
func (k DeviceKind) Valued() bool {
	return capabilities[k].valued
}

// KindOfLibrary returns the kind whose fixed library symbol is lib. Kinds
// without a fixed symbol (op-amps, power symbols) are never matched.
func KindOfLibrary(lib string) (DeviceKind, bool) {
	for k, c := range capabilities {
		if c.library != "" && c.library == lib {
			return k, true
		}
	}
	return 0, false
}

// Component is a library symbol instance.
type Component struct {
	Base
	Kind        DeviceKind
	Library     string
	Orientation geom.Orientation
	Fields      Fields
}

func newComponent(kind DeviceKind, ref, library string, pos geom.Point, o geom.Orientation) *Component {
	c := &Component{
		Base:        Base{pos},
		Kind:        kind,
		Library:     library,
		Orientation: o,
	}
	c.Fields.Reference = newField(FieldReference, ref, geom.Point{}, o)
	c.Fields.Value = newField(FieldValue, "", geom.Point{}, o)
	c.Fields.Footprint = newField(FieldFootprint, "", geom.Point{}, o)
	c.Fields.Doc = newField(FieldDoc, "", geom.Point{}, o)
	return c
}

func (c *Component) capability() capability {
	kc, ok := capabilities[c.Kind]
	if !ok || kc.pins == nil {
		panic(fmt.Sprintf("schematic: %v has no pin rule", c.Kind))
	}
	return kc
}

// Pin1 returns the first pin according to the kind's pin rule.
func (c *Component) Pin1() geom.Point {
	p, _ := c.capability().pins(c.At, c.Orientation)
	return p
}

// Pin2 returns the second pin according to the kind's pin rule.
func (c *Component) Pin2() geom.Point {
	_, p := c.capability().pins(c.At, c.Orientation)
	return p
}

// Terminal returns an anchor on one of the kind's extra terminals. Asking
// for a terminal the kind does not have is a programming error.
func (c *Component) Terminal(t Terminal) *Anchor {
	off, ok := c.capability().terminals[t]
	if !ok {
		panic(fmt.Sprintf("schematic: %v has no terminal %d", c.Kind, t))
	}
	return NewAnchor(c.Position(off))
}

// Reference returns the reference designator, e.g. "R?" or "R3".
func (c *Component) Reference() string {
	return c.Fields.Reference.Text
}

// SetReference overrides the reference designator.
func (c *Component) SetReference(ref string) {
	c.Fields.Reference.Text = ref
}

// Value returns the value text.
func (c *Component) Value() string {
	return c.Fields.Value.Text
}

// SetValue replaces the value field with fresh defaults at offset.
func (c *Component) SetValue(text string, offset geom.Point) {
	c.Fields.Value = newField(FieldValue, text, offset, c.Orientation)
}

// SetUserField sets a named, hidden user field at the component anchor.
func (c *Component) SetUserField(index int, name, text string) {
	f := newField(index, text, geom.Point{}, geom.Vertical)
	f.Name = name
	f.Flags[FlagHidden] = true
	c.Fields.setUser(f)
}

// UserField returns the text of a user field.
func (c *Component) UserField(index int) (string, bool) {
	if index <= FieldDoc {
		return "", false
	}
	f, ok := c.Fields.Get(index)
	if !ok {
		return "", false
	}
	return f.Text, true
}

// SetFootprint sets the hidden footprint field.
func (c *Component) SetFootprint(name string) {
	c.Fields.Footprint = newField(FieldFootprint, name, geom.Point{}, c.Orientation)
	c.Fields.Footprint.Flags[FlagHidden] = true
}

// SetDoc sets the hidden documentation field.
func (c *Component) SetDoc(url string) {
	c.Fields.Doc = newField(FieldDoc, url, geom.Point{}, c.Orientation)
	c.Fields.Doc.Flags[FlagHidden] = true
}

// PlaceField moves a field relative to the anchor.
func (c *Component) PlaceField(index int, offset geom.Point) {
	c.field(index).Offset = offset
}

// SetFieldAlign sets the text alignment of a field.
func (c *Component) SetFieldAlign(index int, align string) {
	c.field(index).Align = align
}

// SetFieldStyle sets the text style of a field.
func (c *Component) SetFieldStyle(index int, style string) {
	c.field(index).Style = style
}

// SetHidden sets the visibility flag of a field.
func (c *Component) SetHidden(index int, hidden bool) {
	c.field(index).Flags[FlagHidden] = hidden
}

func (c *Component) field(index int) *Field {
	f, ok := c.Fields.Get(index)
	if !ok {
		panic(fmt.Sprintf("schematic: %s has no field %d", c.Reference(), index))
	}
	return f
}

// placeRefValue lays out the reference and value text beside a passive
// part, gap mils clear of its body.
func (c *Component) placeRefValue(gap int) {
	align := AlignLeft
	refAt, valueAt := geom.Pt(15+gap, 40), geom.Pt(15+gap, -40)
	if c.Orientation == geom.Horizontal {
		align = AlignCenter
		refAt, valueAt = geom.Pt(-125-gap, 0), geom.Pt(-50-gap, 0)
	}
	for index, at := range map[int]geom.Point{FieldReference: refAt, FieldValue: valueAt} {
		c.PlaceField(index, at)
		c.SetFieldStyle(index, StyleDefault)
		c.SetFieldAlign(index, align)
	}
}

func (c *Component) emit(b *builder, p Placed) {
	at := p.SheetPosition()
	b.printf("$Comp\nL %s %s\nU 1 1 %08X\nP %d %d\n", c.Library, c.Reference(), p.UID, at.X, at.Y)
	for _, f := range c.Fields.All() {
		fp := at.Add(f.Offset)
		b.printf("F %d \"%s\" %s %d %d %d %s %s %s",
			f.Index, escapeQuoted(f.Text), f.Rotation, fp.X, fp.Y, f.Size, f.flagString(), f.Align, f.Style)
		if f.Name != "" {
			b.printf(" \"%s\"", escapeQuoted(f.Name))
		}
		b.printf("\n")
	}
	b.printf("\t1   %d %d\n", at.X, at.Y)
	o := c.Orientation
	b.printf("\t%d   %d   %d   %d\n$EndComp\n", o[0], o[1], o[2], o[3])
}

func newPassive(kind DeviceKind, value string, pos geom.Point, o geom.Orientation) *Component {
	kc := capabilities[kind]
	c := newComponent(kind, kc.prefix+"?", kc.library, pos, o)
	c.SetValue(value, geom.Pt(o[0]*passiveSize, o[1]*passiveSize))
	c.SetUserField(FieldSpicePrimitive, "Spice_Primitive", kc.spice)
	c.SetUserField(FieldSpiceNetlist, "Spice_Netlist_Enabled", "Y")
	c.placeRefValue(kc.labelGap)
	return c
}

// NewResistor returns a small resistor symbol.
func NewResistor(value string, pos geom.Point, o geom.Orientation) *Component {
	return newPassive(KindResistor, value, pos, o)
}

// NewCapacitor returns a small capacitor symbol.
func NewCapacitor(value string, pos geom.Point, o geom.Orientation) *Component {
	return newPassive(KindCapacitor, value, pos, o)
}

// NewInductor returns a small inductor symbol.
func NewInductor(value string, pos geom.Point, o geom.Orientation) *Component {
	return newPassive(KindInductor, value, pos, o)
}

// NewLED returns a small LED symbol.
func NewLED(value string, pos geom.Point, o geom.Orientation) *Component {
	return newPassive(KindLED, value, pos, o)
}

// NewDiode returns a small diode symbol.
func NewDiode(value string, pos geom.Point, o geom.Orientation) *Component {
	return newPassive(KindDiode, value, pos, o)
}

// NewOpAmp returns a single op-amp. Pin1 is the inverting input, Pin2 the
// output; the remaining pins are reached through Terminal. In simulation
// mode the generic simulation symbol is used and model carries the SPICE
// subcircuit name.
func NewOpAmp(model string, pos geom.Point, o geom.Orientation, sim bool) *Component {
	ref, library := "U?", "linear:"+model
	if sim {
		ref, library = "X?", simOpAmpSymbol
	}
	c := newComponent(KindOpAmp, ref, library, pos, o)
	c.SetUserField(FieldSpicePrimitive, "Spice_Primitive", capabilities[KindOpAmp].spice)
	c.SetUserField(FieldSpiceModel, "Spice_Model", model)
	c.SetUserField(FieldSpiceNodes, "Spice_Node_Sequence", "1 3 5 2 4")
	c.SetUserField(FieldSpiceNetlist, "Spice_Netlist_Enabled", "Y")
	c.SetValue(model, geom.Pt(75, 200))
	return c
}

// NewPower returns a bare power symbol for node.
func NewPower(node string, pos geom.Point, o geom.Orientation) *Component {
	return newComponent(KindPower, capabilities[KindPower].prefix+"?", "power:"+node, pos, o)
}

// NewGround returns a ground symbol.
func NewGround(pos geom.Point) *Component {
	c := NewPower("GND", pos, geom.Vertical)
	c.SetValue("GND", geom.Pt(0, -150))
	c.SetHidden(FieldReference, true)
	return c
}

// NewSupply returns a named supply rail symbol such as VDD.
func NewSupply(node string, pos geom.Point, o geom.Orientation) *Component {
	c := NewPower(node, pos, o)
	c.SetValue(node, geom.Pt(0, 150))
	c.SetHidden(FieldReference, true)
	return c
}

// NewVoltageSource returns an independent voltage source for simulation.
// value is the text shown on the sheet, model the SPICE source
// specification, e.g. "dc 0 ac 1". Pin1 is the bottom terminal, Pin2 the
// top.
func NewVoltageSource(pos geom.Point, value, model string) *Component {
	kc := capabilities[KindVoltageSource]
	c := newComponent(KindVoltageSource, kc.prefix+"?", kc.library, pos, geom.Vertical)
	c.SetUserField(FieldSpicePrimitive, "Spice_Primitive", kc.spice)
	c.SetUserField(FieldSpiceModel, "Spice_Model", model)
	c.SetUserField(FieldSpiceNetlist, "Spice_Netlist_Enabled", "Y")
	c.SetValue(value, geom.Pt(75, 200))

	for index, at := range map[int]geom.Point{
		FieldReference:  geom.Pt(250, 50),
		FieldValue:      geom.Pt(250, -50),
		FieldSpiceModel: geom.Pt(250, -150),
	} {
		c.PlaceField(index, at)
		c.SetFieldStyle(index, StyleDefault)
		c.SetFieldAlign(index, AlignLeft)
	}
	return c
}
