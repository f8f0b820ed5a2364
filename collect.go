package jsonextract

import "fmt"

// Node is a position reached while walking a Value: the value itself and,
// when it is an object member, the key it hangs under.
type Node struct {
	Key   string
	Keyed bool
	Value Value
}

// Rule decides what a walk does at each node. Visit reports an item to
// collect (when emit is true) and whether to walk into the node's children.
type Rule[T any] interface {
	Visit(n Node) (item T, emit, descend bool)
}

// RuleFunc adapts an ordinary function to the Rule interface.
type RuleFunc[T any] func(n Node) (item T, emit, descend bool)

// Visit calls f(n).
func (f RuleFunc[T]) Visit(n Node) (T, bool, bool) {
	return f(n)
}

// Collect walks root depth-first in pre-order, visiting array elements in
// index order and object members in source order, and returns everything
// the rule emitted in discovery order. Scalars have no children, so
// descending into them is a no-op.
func Collect[T any](root Value, rule Rule[T]) []T {
	var items []T
	var walk func(n Node)
	walk = func(n Node) {
		item, emit, descend := rule.Visit(n)
		if emit {
			items = append(items, item)
		}
		if !descend {
			return
		}
		switch n.Value.Kind() {
		case Array:
			for _, e := range n.Value.Elements() {
				walk(Node{Value: e})
			}
		case Object:
			for _, m := range n.Value.Members() {
				walk(Node{Key: m.Key, Keyed: true, Value: m.Value})
			}
		}
	}
	walk(Node{Value: root})
	return items
}

// Record is an object that owned all three of the name, role and content
// keys. Values are kept verbatim and may be of any kind.
type Record struct {
	Name    Value `json:"name"`
	Role    Value `json:"role"`
	Content Value `json:"content"`
}

// RecordKeys are the keys an object must own to become a Record.
var RecordKeys = []string{"name", "role", "content"}

// ContentKey is the key whose scalar values become fragments.
const ContentKey = "content"

// RecordRule emits an object owning every key in RecordKeys and does not
// look inside it. Any other container is walked.
var RecordRule Rule[Record] = RuleFunc[Record](func(n Node) (Record, bool, bool) {
	v := n.Value
	if v.Kind() != Object {
		return Record{}, false, true
	}
	name, ok := v.Lookup("name")
	if !ok {
		return Record{}, false, true
	}
	role, ok := v.Lookup("role")
	if !ok {
		return Record{}, false, true
	}
	content, ok := v.Lookup("content")
	if !ok {
		return Record{}, false, true
	}
	return Record{Name: name, Role: role, Content: content}, true, false
})

// ContentRule emits string and number values found under a "content" key.
// The key decides: whatever sits under it is never walked into.
var ContentRule Rule[string] = RuleFunc[string](func(n Node) (string, bool, bool) {
	if !n.Keyed || n.Key != ContentKey {
		return "", false, true
	}
	switch n.Value.Kind() {
	case String, Number:
		return n.Value.String(), true, false
	}
	return "", false, false
})

// ExtractRecords collects every Record in v in discovery order.
func ExtractRecords(v Value) []Record {
	return Collect(v, RecordRule)
}

// ExtractFragments collects every content fragment in v in discovery order.
func ExtractFragments(v Value) []string {
	return Collect(v, ContentRule)
}

// Mode selects the extraction policy.
type Mode string

const (
	// ModeRecords collects name/role/content records.
	ModeRecords Mode = "records"
	// ModeContent collects bare content fragments.
	ModeContent Mode = "content"
)

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRecords, ModeContent:
		return Mode(s), nil
	case "":
		return ModeRecords, nil
	}
	return "", Errorf(EINVALID, "unknown mode %q (want %q or %q)", s, ModeRecords, ModeContent)
}

// Extract runs the mode's policy over v. The result may be empty.
func (m Mode) Extract(v Value) *Result {
	if m == ModeContent {
		return &Result{Mode: m, Fragments: ExtractFragments(v)}
	}
	return &Result{Mode: ModeRecords, Records: ExtractRecords(v)}
}

// NoMatches returns the error reported when a document yields nothing
// under mode m.
func (m Mode) NoMatches() *Error {
	if m == ModeContent {
		return Errorf(ENOMATCH, "no matching items found: no %q key holds a string or number", ContentKey)
	}
	return Errorf(ENOMATCH, "no matching items found: no object contains all of the keys %s", quoteKeys(RecordKeys))
}

func quoteKeys(keys []string) string {
	var s string
	for i, k := range keys {
		switch {
		case i == 0:
		case i == len(keys)-1:
			s += " and "
		default:
			s += ", "
		}
		s += fmt.Sprintf("%q", k)
	}
	return s
}

// Result is the ordered outcome of one extraction. Exactly one of Records
// and Fragments is populated, according to Mode.
type Result struct {
	Mode      Mode
	Records   []Record
	Fragments []string
}

// Len returns the number of extracted items.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	if r.Mode == ModeContent {
		return len(r.Fragments)
	}
	return len(r.Records)
}

// Text returns the formatted plain-text rendition of the result.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	if r.Mode == ModeContent {
		return FormatFragments(r.Fragments)
	}
	return FormatRecords(r.Records)
}
