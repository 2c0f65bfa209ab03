package dataprovider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingQuery struct {
	rows  []string
	calls []string
	err   error
}

func (q *recordingQuery) matching(filter string) []string {
	var out []string
	for _, row := range q.rows {
		if strings.HasPrefix(strings.ToLower(row), strings.ToLower(filter)) {
			out = append(out, row)
		}
	}
	return out
}

func (q *recordingQuery) Count(_ context.Context, filter string) (int64, error) {
	q.calls = append(q.calls, "count:"+filter)
	if q.err != nil {
		return 0, q.err
	}
	return int64(len(q.matching(filter))), nil
}

func (q *recordingQuery) Fetch(_ context.Context, filter string, offset, limit int) ([]string, error) {
	q.calls = append(q.calls, "fetch:"+filter)
	rows := q.matching(filter)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func TestProviderPageCountsThenFetchesWithSameFilter(t *testing.T) {
	t.Parallel()

	q := &recordingQuery{rows: []string{"admin", "Alice", "bob", "alfred"}}
	p := New[string]("users", q)
	p.SetFilter("  al ")

	page, err := p.Page(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("page = %+v, want two matches", page)
	}
	want := []string{"count:al", "fetch:al"}
	if len(q.calls) != 2 || q.calls[0] != want[0] || q.calls[1] != want[1] {
		t.Fatalf("calls = %v, want %v", q.calls, want)
	}

	if _, err := p.Page(context.Background(), 0, 10); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(q.calls) != 4 {
		t.Fatalf("expected every Page call to hit the query, calls = %v", q.calls)
	}
}

func TestProviderSetFilterNotifiesOnlyOnChange(t *testing.T) {
	t.Parallel()

	p := New[string]("groups", &recordingQuery{})
	var notified []string
	p.OnRefresh(func(filter string) { notified = append(notified, filter) })

	if !p.SetFilter("eng") {
		t.Fatal("SetFilter(eng) = false, want true")
	}
	if p.SetFilter(" eng ") {
		t.Fatal("SetFilter with same trimmed value should be a no-op")
	}
	if !p.SetFilter("") {
		t.Fatal("clearing the filter should notify")
	}
	if len(notified) != 2 || notified[0] != "eng" || notified[1] != "" {
		t.Fatalf("notified = %q, want [eng, \"\"]", notified)
	}
	if p.Filter() != "" {
		t.Fatalf("Filter() = %q, want empty", p.Filter())
	}
}

func TestProviderPageNumberClamps(t *testing.T) {
	t.Parallel()

	q := &recordingQuery{rows: []string{"a1", "a2", "a3", "a4", "a5"}}
	p := New[string]("roles", q)

	page, err := p.PageNumber(context.Background(), 9, 2)
	if err != nil {
		t.Fatalf("PageNumber() error = %v", err)
	}
	if page.PageNumber() != 3 || page.TotalPages() != 3 {
		t.Fatalf("page %d of %d, want 3 of 3", page.PageNumber(), page.TotalPages())
	}
	if len(page.Items) != 1 || page.Items[0] != "a5" {
		t.Fatalf("items = %v, want [a5]", page.Items)
	}
	if page.ShowingFrom() != 5 || page.ShowingTo() != 5 {
		t.Fatalf("showing %d-%d, want 5-5", page.ShowingFrom(), page.ShowingTo())
	}
	if !page.HasPrev() || page.HasNext() {
		t.Fatalf("HasPrev/HasNext = %v/%v, want true/false", page.HasPrev(), page.HasNext())
	}
}

func TestProviderWrapsQueryErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	p := New[string]("sites", &recordingQuery{err: boom})
	_, err := p.Page(context.Background(), 0, 10)
	if !errors.Is(err, boom) {
		t.Fatalf("Page() error = %v, want wrapped boom", err)
	}
	if !strings.HasPrefix(err.Error(), "sites: count:") {
		t.Fatalf("error = %q, want provider-prefixed message", err.Error())
	}
}

func TestEmptyPage(t *testing.T) {
	t.Parallel()

	var page Page[string]
	page.Limit = 25
	if page.PageNumber() != 1 || page.TotalPages() != 1 {
		t.Fatalf("empty page = %d of %d, want 1 of 1", page.PageNumber(), page.TotalPages())
	}
	if page.ShowingFrom() != 0 || page.ShowingTo() != 0 {
		t.Fatalf("empty showing range = %d-%d", page.ShowingFrom(), page.ShowingTo())
	}
}

func TestLikePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "%"},
		{in: " jo ", want: "jo%"},
		{in: "50%", want: `50\%%`},
		{in: "a_b", want: `a\_b%`},
		{in: `c:\tmp`, want: `c:\\tmp%`},
	}
	for _, tc := range tests {
		if got := LikePrefix(tc.in); got != tc.want {
			t.Fatalf("LikePrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
