package editor

import "github.com/memononen/skribidi/attr"

// Key identifies a logical key press the host translates from its own input
// system, kept deliberately small and host-agnostic (§4.I "Rule sets").
type Key struct {
	Name string
	Mods Mods
}

// Mods is a bitmask of modifier keys.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Mods) has(bit Mods) bool { return m&bit != 0 }

// Action enumerates what a matched Rule performs (§4.I "performs one of:
// toggle/set/clear attribute, set paragraph attribute, change indent level,
// convert a start-of-paragraph textual prefix to a paragraph style...,
// change paragraph style if the current paragraph is empty or at its
// end..., process a base key, select, undo/redo, insert codepoint, or call
// a custom callback").
type Action uint8

const (
	ActionNone Action = iota
	ActionToggleAttribute
	ActionSetAttribute
	ActionClearAttribute
	ActionSetParagraphAttribute
	ActionIndentDelta
	ActionConvertPrefix
	ActionParagraphStyleIfEmpty
	ActionBaseKey
	ActionSelect
	ActionUndo
	ActionRedo
	ActionInsertCodepoint
	ActionCallback
)

// Rule matches a key+modifier combination (optionally gated on the current
// paragraph style or a leading content prefix) and performs one Action
// (§4.I).
type Rule struct {
	Key Key

	// ParagraphStyleCondition, if non-nil, must return true against the
	// current paragraph's style attribute for the rule to match.
	ParagraphStyleCondition func(style attr.Attribute, hasStyle bool) bool
	// ContentPrefix, if non-empty, must prefix the current paragraph's text
	// for the rule to match (used by ActionConvertPrefix).
	ContentPrefix string

	Action Action

	Attribute     attr.Attribute
	IndentKind    attr.Kind
	IndentDelta   int
	IndentMax     int
	ParagraphKind attr.Kind
	NewStyle      attr.Attribute
	Codepoint     rune
	Callback      func(e *Editor) bool
}

// RuleSet is an ordered list of rules; Process scans them in order and
// stops at the first that matches and handles the key (§4.I "process(key,
// mods) scans rules in order; the first rule that returns handled stops the
// scan. If no rule matches, the key falls through to the default
// handler.").
type RuleSet struct {
	Rules []Rule
}

// Process scans rs.Rules in order, applying the first matching rule.
// Returns true if some rule handled the key. A matching ActionBaseKey rule
// does not handle the key: it reports false, as does a key no rule matches,
// leaving the key to the host's default handler.
func (e *Editor) Process(rs RuleSet, k Key) bool {
	for _, r := range rs.Rules {
		if !ruleMatches(e, r, k) {
			continue
		}
		if e.applyRule(r, k) {
			return true
		}
	}
	return false
}

func ruleMatches(e *Editor, r Rule, k Key) bool {
	if r.Key.Name != k.Name || r.Key.Mods != k.Mods {
		return false
	}
	if r.ParagraphStyleCondition != nil {
		p, _ := e.paragraphForOffset(e.Selection.Caret.Offset)
		style, ok := p.Attrs.Resolve(attr.KindGroupTag)
		if !r.ParagraphStyleCondition(style, ok) {
			return false
		}
	}
	if r.ContentPrefix != "" {
		p, _ := e.paragraphForOffset(e.Selection.Caret.Offset)
		text := string(p.Buf.RuneSlice(0, p.Buf.Len()))
		if len(text) < len(r.ContentPrefix) || text[:len(r.ContentPrefix)] != r.ContentPrefix {
			return false
		}
	}
	return true
}

func (e *Editor) applyRule(r Rule, k Key) bool {
	start, end := e.Selection.Range()
	switch r.Action {
	case ActionToggleAttribute:
		e.ToggleAttribute(start, end, r.Attribute)
	case ActionSetAttribute:
		e.SetAttribute(start, end, r.Attribute)
	case ActionClearAttribute:
		e.ClearAttribute(start, end, r.Attribute.Kind)
	case ActionSetParagraphAttribute:
		e.SetParagraphAttribute(start, end, r.Attribute)
	case ActionIndentDelta:
		e.SetParagraphAttributeDelta(start, end, r.IndentKind, r.IndentDelta, r.IndentMax)
	case ActionConvertPrefix:
		p, _ := e.paragraphForOffset(start)
		base := e.paragraphBase(p)
		n := len([]rune(r.ContentPrefix))
		e.Replace(base, base+n, nil)
		p.Attrs.Append(r.NewStyle)
		p.MarkDirty()
	case ActionParagraphStyleIfEmpty:
		p, _ := e.paragraphForOffset(start)
		if p.Buf.Len() == 0 {
			p.Attrs.Append(r.NewStyle)
			p.MarkDirty()
		} else {
			return false
		}
	case ActionUndo:
		e.Undo()
	case ActionRedo:
		e.Redo()
	case ActionInsertCodepoint:
		e.Insert(string(r.Codepoint))
	case ActionSelect:
		e.updateSelection(selectionExtend, e.Selection.Caret)
	case ActionCallback:
		if r.Callback != nil {
			return r.Callback(e)
		}
		return false
	case ActionBaseKey:
		return false
	default:
		return false
	}
	return true
}
