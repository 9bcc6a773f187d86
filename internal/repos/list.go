package repos

import (
	"fmt"
	"strings"

	"novadash/internal/domain"
)

// where accumulates AND-ed SQL conditions and their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// contains adds a case-insensitive substring match on col.
func (w *where) contains(col, q string) {
	if q == "" {
		return
	}
	w.add(`LOWER(`+col+`) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(q))+"%")
}

func (w *where) common(p domain.ListParams) {
	w.add(`is_deleted = ?`, p.IsDeleted)
	if p.From != nil {
		w.add(`created_at >= ?`, p.From.UTC())
	}
	if p.To != nil {
		w.add(`created_at <= ?`, p.To.UTC())
	}
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return "1=1"
	}
	return strings.Join(w.conds, " AND ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// orderBy maps a JSON sort field onto its column; unknown fields fall back to created_at.
func orderBy(columns map[string]string, p domain.ListParams) string {
	col, ok := columns[p.Sort]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if p.Asc {
		dir = "ASC"
	}
	// id keeps paging stable when the sort key ties.
	return fmt.Sprintf("%s %s, id %s", col, dir, dir)
}

var commonColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func columnsWith(extra map[string]string) map[string]string {
	out := make(map[string]string, len(commonColumns)+len(extra))
	for k, v := range commonColumns {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
