package editor

import "strconv"

// Enabler is implemented by the values behind Actions, Bools and Ints that
// can be disabled, so the UI can gray out the corresponding widgets.
type Enabler interface {
	Enabled() bool
}

type (
	// Action is something the user can do to the session, e.g. zoom in or
	// delete the selected notes. Calling Do on a disabled Action does nothing.
	Action struct {
		doer Doer
	}

	Doer interface {
		Do()
	}
)

func MakeAction(doer Doer) Action { return Action{doer: doer} }

func (a Action) Do() {
	if !a.Enabled() {
		return
	}
	a.doer.Do()
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false
	}
	if e, ok := a.doer.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

type (
	// Bool is a toggleable boolean of the session, e.g. whether snapping is
	// on. SetValue reports whether the value actually changed.
	Bool struct {
		value BoolValue
	}

	BoolValue interface {
		Value() bool
		SetValue(bool)
	}

	simpleBool bool
)

func MakeBool(value BoolValue) Bool    { return Bool{value: value} }
func MakeBoolFromPtr(value *bool) Bool { return Bool{value: (*simpleBool)(value)} }
func (v Bool) Toggle()                 { v.SetValue(!v.Value()) }

func (v Bool) SetValue(value bool) (changed bool) {
	if !v.Enabled() || v.Value() == value {
		return false
	}
	v.value.SetValue(value)
	return true
}

func (v Bool) Value() bool {
	if v.value == nil {
		return false
	}
	return v.value.Value()
}

func (v Bool) Enabled() bool {
	if v.value == nil {
		return false
	}
	if e, ok := v.value.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

func (v *simpleBool) Value() bool         { return bool(*v) }
func (v *simpleBool) SetValue(value bool) { *v = simpleBool(value) }

type (
	// Int is an integer setting of the session with an inclusive range. Values
	// outside the range are clamped before they reach the IntValue.
	Int struct {
		value IntValue
	}

	IntValue interface {
		Value() int
		SetValue(int) (changed bool)
		Range() RangeInclusive
	}

	// StringOfer can be implemented by an IntValue to show its values as
	// something else than plain numbers.
	StringOfer interface {
		StringOf(value int) string
	}

	RangeInclusive struct{ Min, Max int }
)

func MakeInt(value IntValue) Int { return Int{value} }

func (v Int) Add(delta int) (changed bool) {
	return v.SetValue(v.Value() + delta)
}

func (v Int) SetValue(value int) (changed bool) {
	if v.value == nil {
		return false
	}
	value = v.Range().Clamp(value)
	if value == v.Value() {
		return false
	}
	return v.value.SetValue(value)
}

func (v Int) Range() RangeInclusive {
	if v.value == nil {
		return RangeInclusive{0, 0}
	}
	return v.value.Range()
}

func (v Int) Value() int {
	if v.value == nil {
		return 0
	}
	return v.value.Value()
}

func (v Int) Enabled() bool {
	if v.value == nil {
		return false
	}
	if e, ok := v.value.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

func (v Int) String() string { return v.StringOf(v.Value()) }

func (v Int) StringOf(value int) string {
	if s, ok := v.value.(StringOfer); ok {
		return s.StringOf(value)
	}
	return strconv.Itoa(value)
}

func (r RangeInclusive) Clamp(value int) int {
	return min(max(value, r.Min), r.Max)
}

type (
	// String is a text field of the session, e.g. the file path.
	String struct {
		value StringValue
	}

	StringValue interface {
		Value() string
		SetValue(string) (changed bool)
	}
)

func MakeString(value StringValue) String { return String{value: value} }

func (v String) SetValue(value string) (changed bool) {
	if v.value == nil || v.value.Value() == value {
		return false
	}
	return v.value.SetValue(value)
}

func (v String) Value() string {
	if v.value == nil {
		return ""
	}
	return v.value.Value()
}
