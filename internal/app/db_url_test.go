package app

import "testing"

func TestDatabaseURL_RequiresEnv(t *testing.T) {
	t.Setenv("DB_URL", "")
	if _, err := DatabaseURL(); err == nil {
		t.Fatalf("expected error when DB_URL is empty")
	}

	t.Setenv("DB_URL", " postgres://u:p@localhost:5432/hoops?sslmode=disable ")
	got, err := DatabaseURL()
	if err != nil {
		t.Fatalf("resolve database url: %v", err)
	}
	if got != "postgres://u:p@localhost:5432/hoops?sslmode=disable" {
		t.Fatalf("unexpected database url: %q", got)
	}
}

func TestDBNameFromURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "url form", in: "postgres://u:p@localhost:5432/fantasy_hoops?sslmode=disable", want: "fantasy_hoops"},
		{name: "dsn form", in: "host=localhost port=5432 dbname=fantasy_hoops", want: "fantasy_hoops"},
		{name: "quoted dsn", in: `dbname="fantasy_hoops"`, want: "fantasy_hoops"},
		{name: "missing", in: "postgres://u:p@localhost:5432/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dbNameFromURL(tt.in); got != tt.want {
				t.Fatalf("dbNameFromURL(%q)=%q want=%q", tt.in, got, tt.want)
			}
		})
	}
}
