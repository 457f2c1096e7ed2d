package persist

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lair/internal/state"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, "system", d.Theme)
	assert.Equal(t, []string{}, d.Favorites)
	assert.True(t, d.User.Preferences.AnimationsEnabled)
	assert.True(t, d.User.Preferences.ParticlesEnabled)
	assert.False(t, d.User.Preferences.SoundEnabled)
	assert.Equal(t, Stats{}, d.User.Stats)
}

func TestEncode_Shape(t *testing.T) {
	data, err := Encode(Snapshot{Theme: "dark", Favorites: []string{"skrill", "skrill", "nadder"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"theme": "dark",
		"favorites": ["skrill", "nadder"],
		"user": {
			"preferences": {"animationsEnabled": false, "particlesEnabled": false, "soundEnabled": false},
			"stats": {"dragonsViewed": 0, "timeSpent": 0, "favoriteCount": 2}
		}
	}`, string(data))
}

func TestEncode_NilFavoritesWrittenAsArray(t *testing.T) {
	data, err := Encode(Snapshot{Theme: "light"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"favorites":[]`)
}

func TestDecode_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "{", "not json", "[1,2]", `"dark"`, "null"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			snap, recovered := Decode([]byte(raw))
			assert.Equal(t, Default(), snap)
			assert.Equal(t, []string{"$"}, recovered)
		})
	}
}

func TestDecode_FavoritesMistyped(t *testing.T) {
	raw := `{
		"theme": "dark",
		"favorites": "not-an-array",
		"user": {
			"preferences": {"animationsEnabled": false, "particlesEnabled": true, "soundEnabled": true},
			"stats": {"dragonsViewed": 12, "timeSpent": 340, "favoriteCount": 9}
		}
	}`
	snap, recovered := Decode([]byte(raw))

	assert.Equal(t, "dark", snap.Theme)
	assert.Equal(t, []string{}, snap.Favorites)
	assert.False(t, snap.User.Preferences.AnimationsEnabled)
	assert.True(t, snap.User.Preferences.SoundEnabled)
	assert.Equal(t, 12, snap.User.Stats.DragonsViewed)
	assert.Equal(t, 340, snap.User.Stats.TimeSpent)
	assert.Equal(t, 0, snap.User.Stats.FavoriteCount)
	assert.Equal(t, []string{"favorites"}, recovered)
}

func TestDecode_FieldFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		recovered string
		check     func(t *testing.T, s Snapshot)
	}{
		{
			name:      "unknown theme",
			raw:       `{"theme":"neon"}`,
			recovered: "theme",
			check:     func(t *testing.T, s Snapshot) { assert.Equal(t, "system", s.Theme) },
		},
		{
			name:      "numeric theme",
			raw:       `{"theme":3}`,
			recovered: "theme",
			check:     func(t *testing.T, s Snapshot) { assert.Equal(t, "system", s.Theme) },
		},
		{
			name:      "favorites with non-string element",
			raw:       `{"favorites":["skrill", 4]}`,
			recovered: "favorites",
			check:     func(t *testing.T, s Snapshot) { assert.Equal(t, []string{}, s.Favorites) },
		},
		{
			name:      "string boolean",
			raw:       `{"user":{"preferences":{"soundEnabled":"yes"}}}`,
			recovered: "user.preferences.soundEnabled",
			check:     func(t *testing.T, s Snapshot) { assert.False(t, s.User.Preferences.SoundEnabled) },
		},
		{
			name:      "negative counter",
			raw:       `{"user":{"stats":{"dragonsViewed":-3}}}`,
			recovered: "user.stats.dragonsViewed",
			check:     func(t *testing.T, s Snapshot) { assert.Equal(t, 0, s.User.Stats.DragonsViewed) },
		},
		{
			name:      "fractional counter",
			raw:       `{"user":{"stats":{"timeSpent":1.5}}}`,
			recovered: "user.stats.timeSpent",
			check:     func(t *testing.T, s Snapshot) { assert.Equal(t, 0, s.User.Stats.TimeSpent) },
		},
		{
			name:      "counter beyond exact range",
			raw:       `{"user":{"stats":{"timeSpent":1e20}}}`,
			recovered: "user.stats.timeSpent",
			check:     func(t *testing.T, s Snapshot) { assert.Equal(t, 0, s.User.Stats.TimeSpent) },
		},
		{
			name:      "user not an object",
			raw:       `{"user":"bob"}`,
			recovered: "user.preferences.animationsEnabled",
			check: func(t *testing.T, s Snapshot) {
				assert.Equal(t, Default().User, s.User)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, recovered := Decode([]byte(tt.raw))
			assert.Contains(t, recovered, tt.recovered)
			tt.check(t, snap)
		})
	}
}

func TestDecode_FavoriteCountDerived(t *testing.T) {
	raw := `{"theme":"light","favorites":["a","b","a"],"user":{"stats":{"favoriteCount":40}}}`
	snap, _ := Decode([]byte(raw))
	assert.Equal(t, []string{"a", "b"}, snap.Favorites)
	assert.Equal(t, 2, snap.User.Stats.FavoriteCount)
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	raw := `{"theme":"dark","favorites":[],"ui":{"sidebarOpen":true},"user":{"preferences":{"animationsEnabled":true,"particlesEnabled":true,"soundEnabled":false},"stats":{"dragonsViewed":0,"timeSpent":0,"favoriteCount":0}}}`
	snap, recovered := Decode([]byte(raw))
	assert.Empty(t, recovered)
	assert.Equal(t, "dark", snap.Theme)
}

func TestRoundTrip_LargeCounters(t *testing.T) {
	want := Default()
	want.User.Stats.TimeSpent = 3_000_000_000
	want.User.Stats.DragonsViewed = maxCounter

	data, err := Encode(want)
	require.NoError(t, err)

	got, recovered := Decode(data)
	assert.Empty(t, recovered)
	assert.Equal(t, want, got)
}

func TestRoundTrip_Property(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	themes := []string{"dark", "light", "system"}
	for i := range 200 {
		want := randomSnapshot(rng, themes)
		data, err := Encode(want)
		require.NoError(t, err, "iteration %d", i)

		got, recovered := Decode(data)
		require.Empty(t, recovered, "iteration %d: %s", i, data)
		require.Equal(t, want, got, "iteration %d", i)
	}
}

func randomSnapshot(rng *rand.Rand, themes []string) Snapshot {
	n := rng.IntN(6)
	favs := make([]string, 0, n)
	for j := range n {
		favs = append(favs, fmt.Sprintf("dragon-%d-%d", j, rng.IntN(1000)))
	}
	return Snapshot{
		Theme:     themes[rng.IntN(len(themes))],
		Favorites: favs,
		User: User{
			Preferences: Preferences{
				AnimationsEnabled: rng.IntN(2) == 0,
				ParticlesEnabled:  rng.IntN(2) == 0,
				SoundEnabled:      rng.IntN(2) == 0,
			},
			Stats: Stats{
				DragonsViewed: int(rng.Int64N(maxCounter + 1)),
				TimeSpent:     int(rng.Int64N(maxCounter + 1)),
				FavoriteCount: n,
			},
		},
	}
}

func TestStateConversion(t *testing.T) {
	p := state.Persisted{
		Theme:     state.ThemeLight,
		Favorites: []string{"skrill", "nadder"},
		Preferences: state.Preferences{
			Theme:            state.ThemeLight,
			ParticlesEnabled: true,
			SoundEnabled:     true,
		},
		Stats: state.Stats{DragonsViewed: 4, TimeSpent: 90},
	}
	snap := FromState(p)
	assert.Equal(t, "light", snap.Theme)
	assert.Equal(t, 2, snap.User.Stats.FavoriteCount)
	assert.True(t, snap.ToState().Equal(p))
}
