package kconfig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ParseError reports a malformed fact line. Load logs and skips these
// rather than aborting the whole dictionary, per the fact that a
// single bad line in a large dump is common and not fatal to loading
// the rest.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("kconfig: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Load reads the tab-separated fact dump described in §4.5/§6 and
// builds a Dictionary. Malformed lines are logged at error level and
// skipped; Load itself only fails on an unreadable stream.
func Load(r io.Reader) (*Dictionary, error) {
	d := newDictionary()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := loadLine(d, line); err != nil {
			log.WithField("line", lineNo).WithError(err).Error("kconfig: skipping malformed fact line")
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("kconfig: reading dictionary: %w", err)
	}
	return d, nil
}

func loadLine(d *Dictionary, line string) error {
	fields := strings.Split(line, "\t")
	if len(fields) == 0 {
		return &ParseError{Text: line, Msg: "empty fact"}
	}
	kind := fields[0]
	args := fields[1:]

	switch kind {
	case "Item":
		return loadItem(d, line, args)
	case "Depends":
		return loadDepends(d, line, args)
	case "HasPrompts":
		return loadHasPrompts(d, line, args)
	case "Default":
		return loadDefault(d, line, args)
	case "ItemSelects":
		return loadItemSelects(d, line, args)
	case "ChoiceItem":
		return loadChoiceItem(d, line, args)
	case "Choice":
		return loadChoice(d, line, args)
	case "Definition":
		return loadDefinition(d, line, args)
	default:
		return &ParseError{Text: line, Msg: fmt.Sprintf("unknown fact kind %q", kind)}
	}
}

func loadItem(d *Dictionary, line string, args []string) error {
	if len(args) != 2 {
		return &ParseError{Text: line, Msg: "Item wants NAME and type"}
	}
	t, err := ParseSymbolType(args[1])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	d.symbol(args[0]).Type = t
	return nil
}

func loadDepends(d *Dictionary, line string, args []string) error {
	if len(args) != 2 {
		return &ParseError{Text: line, Msg: "Depends wants NAME and expr"}
	}
	expr, err := unquote(args[1])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	d.symbol(args[0]).Dependency = expr
	return nil
}

func loadHasPrompts(d *Dictionary, line string, args []string) error {
	if len(args) != 2 {
		return &ParseError{Text: line, Msg: "HasPrompts wants NAME and n"}
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return &ParseError{Text: line, Msg: "HasPrompts count is not an integer"}
	}
	d.symbol(args[0]).HasPrompts = n
	return nil
}

func loadDefault(d *Dictionary, line string, args []string) error {
	if len(args) != 3 {
		return &ParseError{Text: line, Msg: "Default wants NAME, value-expr and vis-expr"}
	}
	value, err := unquote(args[1])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	vis, err := unquote(args[2])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	s := d.symbol(args[0])
	s.Defaults = append(s.Defaults, Default{Value: value, Visibility: vis})
	return nil
}

func loadItemSelects(d *Dictionary, line string, args []string) error {
	if len(args) != 3 {
		return &ParseError{Text: line, Msg: "ItemSelects wants NAME, target-expr and vis-expr"}
	}
	target, err := unquote(args[1])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	vis, err := unquote(args[2])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	s := d.symbol(args[0])
	s.Selects = append(s.Selects, Select{Target: target, Visibility: vis})
	return nil
}

func loadChoiceItem(d *Dictionary, line string, args []string) error {
	if len(args) != 2 {
		return &ParseError{Text: line, Msg: "ChoiceItem wants NAME and CHOICE_ID"}
	}
	name, choiceID := args[0], args[1]
	d.symbol(name).ChoiceGroup = choiceID
	c, ok := d.Choices[choiceID]
	if !ok {
		c = &Choice{ID: choiceID}
		d.Choices[choiceID] = c
	}
	c.Members = append(c.Members, name)
	return nil
}

func loadChoice(d *Dictionary, line string, args []string) error {
	if len(args) != 3 {
		return &ParseError{Text: line, Msg: "Choice wants ID, required|optional and boolean|tristate"}
	}
	id := args[0]
	c, ok := d.Choices[id]
	if !ok {
		c = &Choice{ID: id}
		d.Choices[id] = c
	}
	switch args[1] {
	case "required":
		c.Required = true
	case "optional":
		c.Required = false
	default:
		return &ParseError{Text: line, Msg: "Choice requiredness must be required or optional"}
	}
	switch args[2] {
	case "tristate":
		c.Tristate = true
	case "boolean":
		c.Tristate = false
	default:
		return &ParseError{Text: line, Msg: "Choice mode must be boolean or tristate"}
	}
	return nil
}

func loadDefinition(d *Dictionary, line string, args []string) error {
	if len(args) != 2 {
		return &ParseError{Text: line, Msg: "Definition wants NAME and file:line"}
	}
	site, err := unquote(args[1])
	if err != nil {
		return &ParseError{Text: line, Msg: err.Error()}
	}
	d.symbol(args[0]).DefinitionSite = site
	return nil
}

// unquote strips the surrounding double quotes from a fact field and
// unescapes \" and \\ , per §6 ("backslash escapes only for \" and
// \\"). An empty quoted string denotes literal true and is returned
// as "".
func unquote(field string) (string, error) {
	if len(field) < 2 || field[0] != '"' || field[len(field)-1] != '"' {
		return "", fmt.Errorf("expected a double-quoted field, got %q", field)
	}
	inner := field[1 : len(field)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
			i++
			b.WriteByte(inner[i])
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}
