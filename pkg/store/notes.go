package store

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// ErrDayFull is returned when today's note count already reached the cap.
var ErrDayFull = errors.New("note limit for today reached")

// AddNote appends an empty note dated today and persists. It refuses,
// leaving the document unchanged, once MaxNotesPerDay notes share
// today's date.
func (s *Store) AddNote() (*Note, error) {
	return s.AddNoteOn(s.Today())
}

// AddNoteOn appends an empty note for the given day, enforcing the
// per-day cap.
func (s *Store) AddNoteOn(date string) (*Note, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
	}
	count := 0
	for _, note := range s.Doc.Notes {
		if note.Date == date {
			count++
		}
	}
	if count >= MaxNotesPerDay {
		return nil, ErrDayFull
	}

	note := Note{
		ID:        s.NewID(),
		Date:      date,
		CreatedAt: s.Now().Format(time.RFC3339),
	}
	s.Doc.Notes = append(s.Doc.Notes, note)
	if err := s.Persist(); err != nil {
		return nil, err
	}
	return &s.Doc.Notes[len(s.Doc.Notes)-1], nil
}

// NoteByID locates a note. The id is the sole targeting key; positions
// are never used.
func (s *Store) NoteByID(id string) *Note {
	for i := range s.Doc.Notes {
		if s.Doc.Notes[i].ID == id {
			return &s.Doc.Notes[i]
		}
	}
	return nil
}

// SetNoteContent updates the free text of a note and persists.
func (s *Store) SetNoteContent(id, content string) error {
	note := s.NoteByID(id)
	if note == nil {
		return fmt.Errorf("no note %s", id)
	}
	note.Content = content
	return s.Persist()
}

// SetNoteLink updates a note's link and persists.
func (s *Store) SetNoteLink(id, link string) error {
	note := s.NoteByID(id)
	if note == nil {
		return fmt.Errorf("no note %s", id)
	}
	note.Link = strings.TrimSpace(link)
	return s.Persist()
}

// SetNoteDate moves a note to another calendar day and persists.
// Invalid dates are rejected so the document never holds one.
func (s *Store) SetNoteDate(id, date string) error {
	if !validDate(date) {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD", date)
	}
	note := s.NoteByID(id)
	if note == nil {
		return fmt.Errorf("no note %s", id)
	}
	note.Date = date
	s.PruneCollapsedWeeks()
	return s.Persist()
}

// RemoveNote filters the note out by id and persists.
func (s *Store) RemoveNote(id string) error {
	kept := s.Doc.Notes[:0]
	for _, note := range s.Doc.Notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	s.Doc.Notes = kept
	s.PruneCollapsedWeeks()
	return s.Persist()
}

// AttachPhoto embeds image bytes on a note as a data URL, keeping the
// original filename for display, and persists. The caller has already
// read the file and checked it is image-typed.
func (s *Store) AttachPhoto(id, filename, mimeType string, data []byte) error {
	note := s.NoteByID(id)
	if note == nil {
		return fmt.Errorf("no note %s", id)
	}
	note.Photo = fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	note.PhotoName = filename
	return s.Persist()
}

// RemovePhoto clears a note's photo fields and persists.
func (s *Store) RemovePhoto(id string) error {
	note := s.NoteByID(id)
	if note == nil {
		return fmt.Errorf("no note %s", id)
	}
	note.Photo = ""
	note.PhotoName = ""
	return s.Persist()
}

// MatchNote reports whether the query occurs in the note's content,
// date or link, case-insensitively. An empty query matches everything.
func MatchNote(note Note, query string) bool {
	if query == "" {
		return true
	}
	haystack := strings.ToLower(note.Content + " " + note.Date + " " + note.Link)
	return strings.Contains(haystack, strings.ToLower(query))
}

// FilterNotes narrows notes to those matching the query. It never
// mutates the underlying collection.
func FilterNotes(notes []Note, query string) []Note {
	if query == "" {
		return notes
	}
	var matched []Note
	for _, note := range notes {
		if MatchNote(note, query) {
			matched = append(matched, note)
		}
	}
	return matched
}

// SortNotes returns a copy ordered by date descending, ties broken by
// creation timestamp descending (newest-created-first within a day).
func SortNotes(notes []Note) []Note {
	sorted := make([]Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// WeekBucket groups the notes of one Monday-to-Sunday week.
type WeekBucket struct {
	Key   string // "start_end" in YYYY-MM-DD
	Start string
	End   string
	Notes []Note
}

// WeekRange returns the Monday and Sunday enclosing a date. The date
// has been normalized, so a parse failure cannot happen in practice;
// the zero week is returned just in case.
func WeekRange(date string) (start, end string) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date, date
	}
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -offset)
	return monday.Format(dateLayout), monday.AddDate(0, 0, 6).Format(dateLayout)
}

// WeekKey returns the collapse-state key for a date's week.
func WeekKey(date string) string {
	start, end := WeekRange(date)
	return start + "_" + end
}

// GroupNotesByWeek buckets already-sorted notes into weeks. Buckets
// come out most-recent-week-first; notes keep their order inside each
// bucket.
func GroupNotesByWeek(notes []Note) []WeekBucket {
	var buckets []WeekBucket
	index := map[string]int{}
	for _, note := range notes {
		start, end := WeekRange(note.Date)
		key := start + "_" + end
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, WeekBucket{Key: key, Start: start, End: end})
		}
		buckets[i].Notes = append(buckets[i].Notes, note)
	}
	return buckets
}

// PruneCollapsedWeeks drops collapse state for weeks that no longer
// hold any note, so the map never accumulates stale keys. Pruning is
// keyed on the full note set, not a search-filtered one, so a search
// cannot erase remembered collapse state.
func (s *Store) PruneCollapsedWeeks() {
	live := map[string]bool{}
	for _, note := range s.Doc.Notes {
		live[WeekKey(note.Date)] = true
	}
	for key := range s.Doc.CollapsedWeeks {
		if !live[key] {
			delete(s.Doc.CollapsedWeeks, key)
		}
	}
}

// ToggleWeek flips a week bucket's collapse state and persists.
func (s *Store) ToggleWeek(key string) error {
	s.Doc.CollapsedWeeks[key] = !s.Doc.CollapsedWeeks[key]
	return s.Persist()
}

// LinkPreview turns a free-text link into a compact preview label. A
// missing scheme is assumed to be https; a value that still does not
// parse as a URL yields no preview, silently.
func LinkPreview(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	withScheme := link
	if !strings.Contains(link, "://") {
		withScheme = "https://" + link
	}
	parsed, err := url.Parse(withScheme)
	if err != nil || parsed.Host == "" || parsed.Scheme == "" {
		return "", false
	}
	return strings.TrimPrefix(withScheme, parsed.Scheme+"://"), true
}
