package catalog

import "testing"

func TestParseQuery(t *testing.T) {
	q := ParseQuery([]string{"composer_sort:Bach", "work:Mass: Kyrie", "  ", "Gloria", "Mass in B"})
	want := []Term{
		{Field: "composer_sort", Value: "Bach"},
		{Field: "work", Value: "Mass: Kyrie"},
		{Value: "Gloria"},
		{Value: "Mass in B"},
	}
	if len(q.Terms) != len(want) {
		t.Fatalf("got %d terms, want %d: %+v", len(q.Terms), len(want), q.Terms)
	}
	for i := range want {
		if q.Terms[i] != want[i] {
			t.Errorf("term %d = %+v, want %+v", i, q.Terms[i], want[i])
		}
	}
	if got := q.String(); got != "composer_sort:Bach work:Mass: Kyrie Gloria Mass in B" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestQueryWhere(t *testing.T) {
	where, args := Query{}.where()
	if where != "1=1" || len(args) != 0 {
		t.Fatalf("unexpected empty query %q %v", where, args)
	}
	where, args = ParseQuery([]string{"genre:50%_off", "sc_custom:x"}).where()
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[0] != `%50\%\_off%` {
		t.Fatalf("expected escaped pattern, got %v", args[0])
	}
	if args[1] != "sc_custom" {
		t.Fatalf("expected attribute key arg, got %v", args[1])
	}
	if where == "" {
		t.Fatal("expected where clause")
	}
}
