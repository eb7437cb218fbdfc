package ir

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ember/internal/types"
)

// ParseModule reads the line-based kernel IR text format:
//
//	module name
//
//	func name
//	  %dst = call intrin.sin float32 (%x)
//	  call intrin.warp_activemask uint32 ()
//
// Blank lines and lines starting with '#' are ignored. Operations must be
// registered; argument expressions are variable references (%name) or
// integer literals.
func ParseModule(r io.Reader, reg *OpRegistry, tys *types.Interner) (*Module, error) {
	mod := &Module{}
	var cur *Func

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(text, "module "):
			mod.Name = strings.TrimSpace(strings.TrimPrefix(text, "module "))
		case strings.HasPrefix(text, "func "):
			cur = &Func{Name: strings.TrimSpace(strings.TrimPrefix(text, "func "))}
			mod.Funcs = append(mod.Funcs, cur)
		default:
			if cur == nil {
				return nil, fmt.Errorf("line %d: call outside func", line)
			}
			call, err := parseCall(text, reg, tys)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cur.Body = append(cur.Body, call)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return mod, nil
}

func parseCall(text string, reg *OpRegistry, tys *types.Interner) (Call, error) {
	var call Call

	if rest, ok := strings.CutPrefix(text, "%"); ok {
		dst, tail, found := strings.Cut(rest, "=")
		if !found {
			return call, fmt.Errorf("expected '=' after destination")
		}
		call.Dst = strings.TrimSpace(dst)
		text = strings.TrimSpace(tail)
	}

	rest, ok := strings.CutPrefix(text, "call ")
	if !ok {
		return call, fmt.Errorf("expected call, got %q", text)
	}
	open := strings.IndexByte(rest, '(')
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return call, fmt.Errorf("expected argument list")
	}
	head := strings.Fields(strings.TrimSpace(rest[:open]))
	if len(head) != 2 {
		return call, fmt.Errorf("expected op and result type, got %q", rest[:open])
	}

	op, ok := reg.Lookup(head[0])
	if !ok {
		return call, fmt.Errorf("unknown op %q", head[0])
	}
	tt, err := types.ParseType(head[1])
	if err != nil {
		return call, err
	}
	call.Callee = Callee{Kind: CalleeOp, Op: op}
	call.Type = tys.Intern(tt)

	args := strings.TrimSuffix(rest[open+1:], ")")
	for _, raw := range strings.Split(args, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if name, ok := strings.CutPrefix(raw, "%"); ok {
			call.Args = append(call.Args, Var(name, types.NoTypeID))
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return call, fmt.Errorf("bad argument %q", raw)
		}
		call.Args = append(call.Args, ConstInt(v, types.NoTypeID))
	}
	return call, nil
}
