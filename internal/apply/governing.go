package apply

// Key identifies one request chain: all rows sharing a key are versions
// of the same request, latest submission governing.
type Key struct {
	UserID string
	Type   string
	Date   string // YYYY-MM-DD
}

func keyOf(a Apply) Key {
	return Key{
		UserID: a.UserID.String(),
		Type:   a.Type,
		Date:   a.Date.Format("2006-01-02"),
	}
}

// Governing reduces a set of rows to the governing row per key: the one
// with the maximum SubmittedAt. Earlier rows are historical and inert,
// whatever their decision state. Ties break on ID so the result is
// deterministic.
func Governing(rows []Apply) map[Key]Apply {
	out := make(map[Key]Apply)
	for _, row := range rows {
		k := keyOf(row)
		cur, ok := out[k]
		if !ok || row.SubmittedAt.After(cur.SubmittedAt) ||
			(row.SubmittedAt.Equal(cur.SubmittedAt) && row.ID.String() > cur.ID.String()) {
			out[k] = row
		}
	}
	return out
}

// GoverningFor picks the governing row among rows of a single key, or
// nil when the chain is empty.
func GoverningFor(rows []Apply) *Apply {
	var best *Apply
	for i := range rows {
		row := &rows[i]
		if best == nil || row.SubmittedAt.After(best.SubmittedAt) ||
			(row.SubmittedAt.Equal(best.SubmittedAt) && row.ID.String() > best.ID.String()) {
			best = row
		}
	}
	return best
}
