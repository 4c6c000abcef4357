package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and the rune offset of its caret. The
// list cursor jumps to the best match while filtering and returns to where
// it was once the filter is cleared.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	restore := -1
	l.Filter = query
	runes := []rune(l.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.FilterCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
	} else if prevTrimmed != "" {
		restore = l.LastCursor
	}
	l.applyFilter()
	if trimmed != "" && len(l.Items) > 0 {
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		} else if len(l.Items) > 0 {
			l.Cursor = 0
		}
		l.LastCursor = -1
	}
}

// ClearFilter drops the filter, reporting whether there was one.
func (l *Level) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("", 0)
	return true
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = len(l.Items) - 1
		return
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter caret.
func (l *Level) FilterCursorPos() int {
	runes := []rune(l.Filter)
	if l.FilterCursor < 0 {
		return 0
	}
	if l.FilterCursor > len(runes) {
		return len(runes)
	}
	return l.FilterCursor
}

// InsertFilterText inserts text at the caret.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the caret.
func (l *Level) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word before the caret.
func (l *Level) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

// MoveFilterCursor moves the caret by delta runes, clamped to the filter.
func (l *Level) MoveFilterCursor(delta int) bool {
	pos := l.FilterCursorPos()
	next := pos + delta
	if next < 0 {
		next = 0
	}
	if end := len([]rune(l.Filter)); next > end {
		next = end
	}
	if next == pos {
		return false
	}
	l.FilterCursor = next
	return true
}

// FilterItems returns items matching query. Pinned items always match.
// Fuzzy matches on labels are preferred; when there are none, a plain
// substring match on label or id is used.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	matches := make(map[int]struct{}, len(items))
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, labels) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	if len(matches) == 0 {
		lower := strings.ToLower(trimmed)
		for idx, item := range items {
			if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
				matches[idx] = struct{}{}
			}
		}
	}
	filtered := make([]Item, 0, len(matches))
	for idx, item := range items {
		if _, ok := matches[idx]; ok || item.Pinned {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the index of the item that best answers query.
// Exact matches beat label prefixes, which beat substrings, which beat the
// closest fuzzy match. Pinned items are never chosen while alternatives exist.
func BestMatchIndex(items []Item, query string) int {
	trimmed := strings.TrimSpace(query)
	candidates := make([]int, 0, len(items))
	for i, item := range items {
		if !item.Pinned {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		if len(items) == 0 {
			return -1
		}
		return 0
	}
	if trimmed == "" {
		return candidates[0]
	}
	lower := strings.ToLower(trimmed)
	tiers := []func(Item) bool{
		func(it Item) bool { return strings.EqualFold(it.Label, trimmed) || strings.EqualFold(it.ID, trimmed) },
		func(it Item) bool { return strings.HasPrefix(strings.ToLower(it.Label), lower) },
		func(it Item) bool { return strings.Contains(strings.ToLower(it.Label), lower) },
	}
	for _, match := range tiers {
		for _, i := range candidates {
			if match(items[i]) {
				return i
			}
		}
	}
	labels := make([]string, len(candidates))
	for j, i := range candidates {
		labels[j] = items[i].Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return candidates[0]
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return candidates[best.OriginalIndex]
}
