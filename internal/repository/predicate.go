package repository

import (
	"strconv"
	"strings"
)

// predicates accumulates parameterized SQL conditions and their arguments.
// Placeholders are numbered from the position after any arguments already
// bound by the caller.
type predicates struct {
	conds []string
	args  []any
}

func newPredicates(bound ...any) *predicates {
	return &predicates{args: append([]any(nil), bound...)}
}

func (p *predicates) next(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// contains adds a case-insensitive substring match; empty values are skipped.
func (p *predicates) contains(column, value string) *predicates {
	if value == "" {
		return p
	}
	p.conds = append(p.conds, column+" ILIKE "+p.next("%"+escapeLike(value)+"%"))
	return p
}

func (p *predicates) atLeast(column string, value *int64) *predicates {
	if value == nil {
		return p
	}
	p.conds = append(p.conds, column+" >= "+p.next(*value))
	return p
}

func (p *predicates) atMost(column string, value *int64) *predicates {
	if value == nil {
		return p
	}
	p.conds = append(p.conds, column+" <= "+p.next(*value))
	return p
}

func (p *predicates) empty() bool {
	return len(p.conds) == 0
}

// where joins the conditions with op ("AND" / "OR"). It returns "" when no
// condition was added.
func (p *predicates) where(op string) string {
	if p.empty() {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " "+op+" ")
}

// assignments accumulates "column = $n" pairs for a partial UPDATE.
type assignments struct {
	sets []string
	args []any
}

func (a *assignments) set(column string, value any) {
	a.args = append(a.args, value)
	a.sets = append(a.sets, column+" = $"+strconv.Itoa(len(a.args)))
}

func (a *assignments) empty() bool {
	return len(a.sets) == 0
}

func (a *assignments) clause() string {
	return strings.Join(a.sets, ", ")
}

// bind appends v to the argument list and returns its placeholder.
func (a *assignments) bind(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
