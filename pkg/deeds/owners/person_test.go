package owners

import "testing"

func TestBuildPersonBaseline(t *testing.T) {
	p := NewDefault()

	got, ok := p.buildPerson([]string{"SMITH", "JOHN"}, "")
	if !ok {
		t.Fatal("two tokens should build a person")
	}
	want := Owner{Kind: KindPerson, FirstName: "John", LastName: "Smith"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	got, ok = p.buildPerson([]string{"SMITH", "JOHN", "ROBERT"}, "")
	if !ok {
		t.Fatal("three tokens should build a person")
	}
	if got.FirstName != "John" || got.MiddleName != "Robert" || got.LastName != "Smith" {
		t.Errorf("unexpected person %+v", got)
	}
}

func TestBuildPersonSurnameOmission(t *testing.T) {
	p := NewDefault()

	// Uppercase pair after a surname-carrying owner reads first+middle.
	got, ok := p.buildPerson([]string{"ANN", "MARIE"}, "SMITH")
	if !ok {
		t.Fatal("continuation pair should build a person")
	}
	if got.FirstName != "Ann" || got.MiddleName != "Marie" || got.LastName != "Smith" {
		t.Errorf("unexpected person %+v", got)
	}

	// Without a fallback the same pair reads surname-first.
	got, _ = p.buildPerson([]string{"ANN", "MARIE"}, "")
	if got.FirstName != "Marie" || got.LastName != "Ann" {
		t.Errorf("baseline reading expected, got %+v", got)
	}

	// Mixed case defeats the override.
	got, _ = p.buildPerson([]string{"Ann", "Marie"}, "SMITH")
	if got.LastName != "Ann" {
		t.Errorf("mixed case should read surname-first, got %+v", got)
	}
}

func TestBuildPersonSingleToken(t *testing.T) {
	p := NewDefault()

	if _, ok := p.buildPerson([]string{"SMITH"}, ""); ok {
		t.Error("lone token without surname context should fail")
	}

	got, ok := p.buildPerson([]string{"MARY"}, "SMITH")
	if !ok {
		t.Fatal("lone token with fallback surname should build")
	}
	if got.FirstName != "Mary" || got.LastName != "Smith" || got.MiddleName != "" {
		t.Errorf("unexpected person %+v", got)
	}
}

func TestBuildPersonRejectsLongRuns(t *testing.T) {
	p := NewDefault()

	if _, ok := p.buildPerson([]string{"SMITH", "JOHN", "ROBERT", "ANN"}, ""); ok {
		t.Error("four tokens are ambiguous and should not build a single person")
	}
	if _, ok := p.buildPerson(nil, "SMITH"); ok {
		t.Error("no tokens should fail")
	}
}

func TestBuildPersonStripsSuffixes(t *testing.T) {
	p := NewDefault()

	got, _ := p.buildPerson([]string{"SMITH", "JOHN", "JR"}, "")
	if got.MiddleName != "" {
		t.Errorf("suffix should be stripped, got middle %q", got.MiddleName)
	}

	got, _ = p.buildPerson([]string{"SMITH", "JOHN", "III"}, "")
	if got.MiddleName != "" {
		t.Errorf("generational suffix should be stripped, got middle %q", got.MiddleName)
	}

	got, _ = p.buildPerson([]string{"SMITH", "JOHN", "PHD."}, "")
	if got.MiddleName != "" {
		t.Errorf("professional suffix with period should be stripped, got middle %q", got.MiddleName)
	}
}
