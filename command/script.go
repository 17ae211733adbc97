package command

import (
	"fmt"
	"strings"

	"github.com/atma-cli/atma/expr"
	"github.com/atma-cli/atma/key"
	"github.com/atma-cli/atma/palette"
	"github.com/atma-cli/atma/parse"
	"github.com/samber/mo"
)

// Statements splits a script into its ';'-terminated statements. Comments
// are suppressed through the lexer's stream filter; whitespace is preserved
// so statement text re-parses exactly.
func Statements(src string) []string {
	tokens := parse.DropComments(parse.Lex(src))
	var statements []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			statements = append(statements, s)
		}
		b.Reset()
	}
	for _, tok := range tokens {
		if tok.Kind == parse.TokenPunct && tok.Text == ";" {
			flush()
			continue
		}
		b.WriteString(tok.Text)
	}
	flush()
	return statements
}

// scriptVerbs are the commands permitted in script context.
var scriptVerbs = map[string]bool{
	"insert": true,
	"delete": true,
	"move":   true,
	"set":    true,
}

// ParseStatement parses one script statement into a Command.
func ParseStatement(text string) (Command, error) {
	verb, f := parse.Word(text)
	if f != nil {
		return nil, fmt.Errorf("expected a command verb: %w", f)
	}

	switch verb.Value {
	case "insert":
		return parseInsert(verb.Rest)
	case "delete":
		return parseDelete(verb.Rest)
	case "move":
		return parseMove(verb.Rest)
	case "set":
		return parseSet(verb.Rest)
	}
	return nil, fmt.Errorf("unknown command %q", verb.Value)
}

func expectEnd(rest string) error {
	if trailing := parse.SkipWs(rest); trailing != "" {
		return fmt.Errorf("unexpected trailing input %q", trailing)
	}
	return nil
}

func parseInsert(rest string) (Command, error) {
	c := Insert{}
	e, f := parse.InsertExpr(rest)
	if f != nil {
		return nil, fmt.Errorf("insert: %w", f)
	}
	c.Exprs = []expr.InsertExpr{e.Value}
	rest = e.Rest

	for {
		if s, f := parse.Literal("--name")(rest); f == nil {
			name, f := parse.Word(s.Rest)
			if f != nil {
				return nil, fmt.Errorf("insert --name: %w", f)
			}
			c.Name = mo.Some(name.Value)
			rest = name.Rest
			continue
		}
		if s, f := parse.Literal("--at")(rest); f == nil {
			ref, f := parse.CellRef(s.Rest)
			if f != nil {
				return nil, fmt.Errorf("insert --at: %w", f)
			}
			c.At = mo.Some(ref.Value)
			rest = ref.Rest
			continue
		}
		break
	}
	return c, expectEnd(rest)
}

func parseDelete(rest string) (Command, error) {
	sel, f := parse.Selection(rest)
	if f != nil {
		return nil, fmt.Errorf("delete: %w", f)
	}
	c := Delete{Sel: sel.Value}
	rest = sel.Rest
	if s, f := parse.Literal("--clear-orphans")(rest); f == nil {
		c.ClearOrphans = true
		rest = s.Rest
	}
	return c, expectEnd(rest)
}

func parseMove(rest string) (Command, error) {
	sel, f := parse.Selection(rest)
	if f != nil {
		return nil, fmt.Errorf("move: %w", f)
	}
	c := Move{Sel: sel.Value}
	rest = sel.Rest
	if s, f := parse.Literal("--to")(rest); f == nil {
		ref, f := parse.CellRef(s.Rest)
		if f != nil {
			return nil, fmt.Errorf("move --to: %w", f)
		}
		c.To = mo.Some(ref.Value)
		rest = ref.Rest
	}
	return c, expectEnd(rest)
}

func parseSet(rest string) (Command, error) {
	sub, f := parse.Word(rest)
	if f != nil {
		return nil, fmt.Errorf("set: expected a subcommand: %w", f)
	}
	rest = sub.Rest
	// Word stops at '-', so the hyphenated cursor-behavior subcommands are
	// joined back together here.
	if after, ok := strings.CutPrefix(rest, "-cursor-behavior"); ok {
		sub.Value += "-cursor-behavior"
		rest = after
	}

	switch sub.Value {
	case "name":
		ref, f := parse.CellRef(rest)
		if f != nil {
			return nil, fmt.Errorf("set name: %w", f)
		}
		c := SetName{Ref: ref.Value}
		rest = ref.Rest
		if name, f := parse.Word(rest); f == nil {
			c.Name = mo.Some(name.Value)
			rest = name.Rest
		}
		return c, expectEnd(rest)

	case "group":
		ref, f := parse.CellRef(rest)
		if f != nil {
			return nil, fmt.Errorf("set group: %w", f)
		}
		c := SetGroup{Ref: ref.Value}
		rest = ref.Rest
		name, f := parse.Word(rest)
		if f != nil {
			return nil, fmt.Errorf("set group: expected a group name: %w", f)
		}
		c.Group = name.Value
		rest = name.Rest
		if s, f := parse.Literal("--remove")(rest); f == nil {
			c.Remove = true
			rest = s.Rest
		}
		return c, expectEnd(rest)

	case "expr":
		ref, f := parse.CellRef(rest)
		if f != nil {
			return nil, fmt.Errorf("set expr: %w", f)
		}
		e, f := parse.InsertExpr(ref.Rest)
		if f != nil {
			return nil, fmt.Errorf("set expr: %w", f)
		}
		return SetExpr{Ref: ref.Value, Expr: e.Value}, expectEnd(e.Rest)

	case "cursor":
		ref, f := parse.CellRef(rest)
		if f != nil {
			return nil, fmt.Errorf("set cursor: %w", f)
		}
		return SetCursor{Ref: ref.Value}, expectEnd(ref.Rest)

	case "history":
		mode, f := parse.Word(rest)
		if f != nil {
			return nil, fmt.Errorf("set history: %w", f)
		}
		return SetHistory{Mode: mode.Value}, expectEnd(mode.Rest)

	case "delete-cursor-behavior", "insert-cursor-behavior", "move-cursor-behavior":
		behavior, f := parse.Word(rest)
		if f != nil {
			return nil, fmt.Errorf("set %s: %w", sub.Value, f)
		}
		keys := map[string]string{
			"delete-cursor-behavior": key.DeleteCursorBehavior,
			"insert-cursor-behavior": key.InsertCursorBehavior,
			"move-cursor-behavior":   key.MoveCursorBehavior,
		}
		return SetBehavior{Key: keys[sub.Value], Behavior: behavior.Value}, expectEnd(behavior.Rest)
	}
	return nil, fmt.Errorf("unknown set subcommand %q", sub.Value)
}

// RunScript parses a ';'-separated script and dispatches each statement.
// Only editing commands are permitted; execution stops at the first error.
func RunScript(p *palette.Palette, src string) error {
	env := &Env{Palette: p, Session: true}
	for i, stmt := range Statements(src) {
		verb, f := parse.Word(stmt)
		if f != nil {
			return fmt.Errorf("statement %d: %w", i+1, f)
		}
		if !scriptVerbs[verb.Value] {
			return fmt.Errorf("statement %d: command %q is not allowed in scripts", i+1, verb.Value)
		}
		cmd, err := ParseStatement(stmt)
		if err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
		if err := cmd.Execute(env); err != nil {
			return fmt.Errorf("statement %d (%s): %w", i+1, verb.Value, err)
		}
	}
	return nil
}
