package skillsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"competency-assessment-be/internal/pkg/logger"
	"competency-assessment-be/pkg/competency"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registeredNurses = Occupation{Code: "29-1141.00", Title: "Registered Nurses"}

func TestIsNursing(t *testing.T) {
	tests := []struct {
		occ  Occupation
		want bool
	}{
		{registeredNurses, true},
		{Occupation{Code: "29-1171.00", Title: "Nurse Practitioners"}, true},
		{Occupation{Code: "29-2061.00", Title: "Licensed Practical and Licensed Vocational Nurses"}, true},
		{Occupation{Code: "29-1141.04", Title: "Clinical Specialists"}, true},
		{Occupation{Code: "99-0000.00", Title: "Nursing Assistant Trainer"}, true},
		{Occupation{Code: "29-1122.00", Title: "Physical Therapists"}, false},
		{Occupation{Code: "15-1132.00", Title: "Software Developers, Applications"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.occ.Title, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNursing(tt.occ))
		})
	}
}

func TestMapCategory(t *testing.T) {
	developer := Occupation{Code: "15-1132.00", Title: "Software Developers, Applications"}

	tests := []struct {
		name    string
		skill   string
		generic string
		occ     Occupation
		want    string
	}{
		{"monitoring", "Monitoring", "", registeredNurses, competency.CategoryPatientCare},
		{"judgment", "Judgment and Decision Making", "", registeredNurses, competency.CategoryDecision},
		{"listening", "Active Listening", "", registeredNurses, competency.CategoryCommunication},
		{"quality", "Quality Control Analysis", "", registeredNurses, competency.CategorySafety},
		{"learning", "Learning Strategies", "", registeredNurses, competency.CategoryProfessional},
		{"no keyword keeps generic", "Mathematics", "Basic Skills", registeredNurses, "Basic Skills"},
		{"no keyword no generic", "Mathematics", "", registeredNurses, competency.DefaultCategory},
		{"non nursing keeps generic", "Monitoring", "Basic Skills", developer, "Basic Skills"},
		{"non nursing default", "Monitoring", "", developer, competency.DefaultCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCategory(tt.skill, tt.generic, tt.occ))
		})
	}
}

func TestLocalSearch(t *testing.T) {
	t.Run("title substring", func(t *testing.T) {
		got := LocalSearch("NURSE")
		require.Len(t, got, 3)
		assert.Equal(t, "29-1141.00", got[0].Code)
	})

	t.Run("code substring", func(t *testing.T) {
		got := LocalSearch("15-113")
		assert.Len(t, got, 2)
	})

	t.Run("empty term returns catalogue", func(t *testing.T) {
		assert.Len(t, LocalSearch("  "), len(Catalogue()))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, LocalSearch("astronaut"))
	})
}

func TestCredentialingSkills(t *testing.T) {
	skills := CredentialingSkills(registeredNurses)

	// 29 platform entries, two of which are listed by both ANCC and QSEN
	assert.Len(t, skills, 27)

	byName := make(map[string]competency.Skill)
	for _, s := range skills {
		byName[s.Name] = s
	}
	assert.Equal(t, []string{"ANCC", "QSEN"}, byName["Evidence-Based Practice"].Sources)
	assert.Equal(t, []string{"NCLEX"}, byName["Physiological Integrity"].Sources)

	assert.Nil(t, CredentialingSkills(Occupation{Code: "15-1131.00", Title: "Computer Programmers"}))
}

func TestFallbackSkills(t *testing.T) {
	t.Run("nursing role gets credentialing skills", func(t *testing.T) {
		skills := FallbackSkills(registeredNurses)
		assert.Len(t, skills, 25+27)
		assert.Equal(t, "Active Listening", skills[0].Name)
		assert.Equal(t, []string{SourceONET}, skills[0].Sources)
	})

	t.Run("other roles get the base list only", func(t *testing.T) {
		skills := FallbackSkills(Occupation{Code: "15-1131.00", Title: "Computer Programmers"})
		assert.Len(t, skills, 25)
	})
}

func TestParseOccupations(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Occupation
	}{
		{
			"occupation array",
			`{"occupation":[{"code":"29-1141.00","title":"Registered Nurses"},{"code":"29-1171.00","title":"Nurse Practitioners"}]}`,
			[]Occupation{registeredNurses, {Code: "29-1171.00", Title: "Nurse Practitioners"}},
		},
		{
			"single occupation object",
			`{"occupation":{"code":"29-1141.00","title":"Registered Nurses"}}`,
			[]Occupation{registeredNurses},
		},
		{
			"occupations key with alternate fields",
			`{"occupations":[{"onetsoc_code":"29-1141.00","occupation_title":"Registered Nurses"}]}`,
			[]Occupation{registeredNurses},
		},
		{
			"bare array with duplicates and blanks",
			`[{"code":"29-1141.00","title":"Registered Nurses"},{"code":"29-1141.00","title":"Registered Nurses"},{"title":"No Code"}]`,
			[]Occupation{registeredNurses},
		},
		{
			"empty envelope",
			`{}`,
			[]Occupation{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOccupations([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOccupations([]byte(`not json`))
	assert.ErrorIs(t, err, ErrFetch)
}

func TestParseSkills(t *testing.T) {
	body := `{"occupation":{"skills":[
		{"element_name":"Active Listening","importance":4.5,"element_description":"Listening well."},
		{"name":"Mathematics","category":"Basic Skills"},
		{"importance":4}
	]}}`

	skills, err := ParseSkills([]byte(body), registeredNurses)
	require.NoError(t, err)
	require.Len(t, skills, 2)

	assert.Equal(t, competency.Skill{
		Name:        "Active Listening",
		Category:    competency.CategoryCommunication,
		Importance:  4.5,
		Description: "Listening well.",
		Sources:     []string{SourceONET},
	}, skills[0])
	assert.Equal(t, 3.0, skills[1].Importance)
	assert.Equal(t, "Basic Skills", skills[1].Category)

	flat, err := ParseSkills([]byte(`{"skills":[{"name":"Writing"}]}`), registeredNurses)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, competency.CategoryCommunication, flat[0].Category)
}

func TestClient(t *testing.T) {
	var gotAuth, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, _, _ = r.BasicAuth()
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.RequestURI()

		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("keyword") == "nobody" {
				w.Write([]byte(`{"occupation":[]}`))
				return
			}
			w.Write([]byte(`{"occupation":[{"code":"29-1141.00","title":"Registered Nurses"}]}`))
		case "/occupations/29-1141.00/skills":
			w.Write([]byte(`{"skills":[{"element_name":"Monitoring","importance":4.9}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "user", "secret")
	ctx := context.Background()

	occs, err := client.SearchOccupations(ctx, "registered nurse")
	require.NoError(t, err)
	assert.Equal(t, []Occupation{registeredNurses}, occs)
	assert.Equal(t, "user", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/search?keyword=registered+nurse", gotPath)

	_, err = client.SearchOccupations(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	skills, err := client.FetchSkills(ctx, registeredNurses)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, competency.CategoryPatientCare, skills[0].Category)

	_, err = client.FetchSkills(ctx, Occupation{Code: "00-0000.00"})
	assert.ErrorIs(t, err, ErrFetch)
}

type fakeRemote struct {
	occs      []Occupation
	skills    []competency.Skill
	err       error
	skillHits int
}

func (f *fakeRemote) SearchOccupations(context.Context, string) ([]Occupation, error) {
	return f.occs, f.err
}

func (f *fakeRemote) FetchSkills(context.Context, Occupation) ([]competency.Skill, error) {
	f.skillHits++
	return f.skills, f.err
}

func TestSourceSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("remote skills merged with credentialing and cached", func(t *testing.T) {
		remote := &fakeRemote{skills: []competency.Skill{
			{Name: "Safety", Importance: 3, Category: competency.CategorySafety, Sources: []string{SourceONET}},
		}}
		src := NewSource(remote, NewTieredCache(time.Minute, nil), logger.NewNopLogger())

		set := src.Skills(ctx, registeredNurses)
		assert.False(t, set.Fallback)
		assert.Len(t, set.Skills, 27)
		assert.Equal(t, "Safety", set.Skills[0].Name)
		assert.Equal(t, 4.9, set.Skills[0].Importance)
		assert.Equal(t, []string{SourceONET, "QSEN"}, set.Skills[0].Sources)

		again := src.Skills(ctx, registeredNurses)
		assert.Equal(t, set.Skills, again.Skills)
		assert.Equal(t, 1, remote.skillHits)
	})

	t.Run("fetch error uses fallback", func(t *testing.T) {
		src := NewSource(&fakeRemote{err: ErrFetch}, nil, logger.NewNopLogger())
		set := src.Skills(ctx, registeredNurses)
		assert.True(t, set.Fallback)
		assert.Len(t, set.Skills, 52)
	})

	t.Run("empty remote list uses fallback", func(t *testing.T) {
		src := NewSource(&fakeRemote{}, nil, logger.NewNopLogger())
		assert.True(t, src.Skills(ctx, registeredNurses).Fallback)
	})

	t.Run("offline source", func(t *testing.T) {
		src := NewSource(nil, nil, logger.NewNopLogger())
		assert.True(t, src.Skills(ctx, registeredNurses).Fallback)
	})
}

func TestSourceSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("remote result", func(t *testing.T) {
		src := NewSource(&fakeRemote{occs: []Occupation{registeredNurses}}, nil, logger.NewNopLogger())
		assert.Equal(t, []Occupation{registeredNurses}, src.Search(ctx, "rn"))
	})

	t.Run("remote failure falls back to local search", func(t *testing.T) {
		src := NewSource(&fakeRemote{err: errors.Join(ErrNotFound)}, nil, logger.NewNopLogger())
		got := src.Search(ctx, "therapist")
		require.Len(t, got, 2)
		assert.Equal(t, "Physical Therapists", got[0].Title)
	})

	t.Run("blank term lists catalogue", func(t *testing.T) {
		src := NewSource(nil, nil, logger.NewNopLogger())
		assert.Len(t, src.Search(ctx, ""), 12)
	})
}

func TestTieredCacheWithUnreachableRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	c := NewTieredCache(time.Minute, rdb)
	ctx := context.Background()

	var out []string
	assert.False(t, c.Get(ctx, "missing", &out))

	c.Set(ctx, "k", []string{"a", "b"})
	require.True(t, c.Get(ctx, "k", &out))
	assert.Equal(t, []string{"a", "b"}, out)
}
