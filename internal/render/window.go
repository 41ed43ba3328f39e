package render

// window emits the deferred post-context of the previous change, then the
// context leading into a change at line cur. A single gap marker row stands
// in for every stretch of hidden lines, including lines skipped before the
// first change. Reports whether rendering may continue.
func (r *renderer) window(cur int) bool {
	if r.pending >= 0 {
		from := max(r.pending, r.lastShown+1)
		to := min(r.pending+r.opts.ContextLines, cur)
		for i := from; i < to; i++ {
			if !r.contextRow(i) {
				return false
			}
		}
		r.pending = -1
	}

	start := max(cur-r.opts.ContextLines, r.lastShown+1)
	// lastShown starts at -1, so this also covers a first change whose
	// window begins past line 0.
	if start > r.lastShown+1 {
		if !r.push(r.markerRow(nil)) {
			return false
		}
	}
	for i := start; i < cur; i++ {
		if !r.contextRow(i) {
			return false
		}
	}
	return true
}

// finish flushes the post-context window of the final change, capped at the
// end of the text. A hidden tail of two or more lines gets a closing gap
// marker; a lone final line falls outside the window accounting and stays
// silent.
func (r *renderer) finish() {
	if r.pending < 0 {
		return
	}
	n := len(r.lines)
	from := max(r.pending, r.lastShown+1)
	to := min(r.pending+r.opts.ContextLines, n)
	for i := from; i < to; i++ {
		if !r.contextRow(i) {
			return
		}
	}
	if to < n-1 {
		r.push(r.markerRow(nil))
	}
}

// contextRow emits one unchanged line as an unstyled row.
func (r *renderer) contextRow(i int) bool {
	body := r.lines[i]
	if r.opts.Display != nil {
		body = r.opts.Display(i, body)
	}
	if !r.push(r.row(i+1, body, nil)) {
		return false
	}
	r.lastShown = i
	return true
}
