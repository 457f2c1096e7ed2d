package persist

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/five82/lair/internal/favorites"
	"github.com/five82/lair/internal/state"
)

// Key is the storage key the snapshot lives under.
const Key = "dragon-app-state"

// Snapshot is the durable slice of store state, shaped as it is stored.
type Snapshot struct {
	Theme     string   `json:"theme"`
	Favorites []string `json:"favorites"`
	User      User     `json:"user"`
}

// User groups preferences and stats as stored.
type User struct {
	Preferences Preferences `json:"preferences"`
	Stats       Stats       `json:"stats"`
}

// Preferences are the stored preference flags.
type Preferences struct {
	AnimationsEnabled bool `json:"animationsEnabled"`
	ParticlesEnabled  bool `json:"particlesEnabled"`
	SoundEnabled      bool `json:"soundEnabled"`
}

// Stats are the stored usage counters.
type Stats struct {
	DragonsViewed int `json:"dragonsViewed"`
	TimeSpent     int `json:"timeSpent"`
	FavoriteCount int `json:"favoriteCount"`
}

// Default is the snapshot used when nothing usable is stored.
func Default() Snapshot {
	return FromState(state.Default().Persisted())
}

// FromState converts the store's durable slice to its stored shape.
func FromState(p state.Persisted) Snapshot {
	favs := favorites.FromIDs(p.Favorites).IDs()
	if favs == nil {
		favs = []string{}
	}
	return Snapshot{
		Theme:     string(p.Theme),
		Favorites: favs,
		User: User{
			Preferences: Preferences{
				AnimationsEnabled: p.Preferences.AnimationsEnabled,
				ParticlesEnabled:  p.Preferences.ParticlesEnabled,
				SoundEnabled:      p.Preferences.SoundEnabled,
			},
			Stats: Stats{
				DragonsViewed: p.Stats.DragonsViewed,
				TimeSpent:     p.Stats.TimeSpent,
				FavoriteCount: len(favs),
			},
		},
	}
}

// ToState converts a stored snapshot into the store's durable slice.
func (s Snapshot) ToState() state.Persisted {
	return state.Persisted{
		Theme:     state.Theme(s.Theme),
		Favorites: append([]string(nil), s.Favorites...),
		Preferences: state.Preferences{
			Theme:             state.Theme(s.Theme),
			AnimationsEnabled: s.User.Preferences.AnimationsEnabled,
			ParticlesEnabled:  s.User.Preferences.ParticlesEnabled,
			SoundEnabled:      s.User.Preferences.SoundEnabled,
		},
		Stats: state.Stats{
			DragonsViewed: s.User.Stats.DragonsViewed,
			TimeSpent:     s.User.Stats.TimeSpent,
		},
	}
}

// Encode serialises s. Favorites are deduplicated, nil becomes [] and the
// favorite count is derived from the set.
func Encode(s Snapshot) ([]byte, error) {
	s.Favorites = favorites.FromIDs(s.Favorites).IDs()
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	s.User.Stats.FavoriteCount = len(s.Favorites)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses raw and never fails. Each field that is missing or has the
// wrong type falls back to its default while valid siblings are kept. The
// returned paths name every field that fell back.
func Decode(raw []byte) (Snapshot, []string) {
	def := Default()
	if !gjson.ValidBytes(raw) {
		return def, []string{"$"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return def, []string{"$"}
	}

	var recovered []string
	out := def

	if theme, ok := themeField(root.Get("theme")); ok {
		out.Theme = theme
	} else {
		recovered = append(recovered, "theme")
	}

	if favs, ok := stringSet(root.Get("favorites")); ok {
		out.Favorites = favs
	} else {
		recovered = append(recovered, "favorites")
	}

	prefs := root.Get("user.preferences")
	boolFields := []struct {
		path string
		dst  *bool
	}{
		{"animationsEnabled", &out.User.Preferences.AnimationsEnabled},
		{"particlesEnabled", &out.User.Preferences.ParticlesEnabled},
		{"soundEnabled", &out.User.Preferences.SoundEnabled},
	}
	for _, f := range boolFields {
		v := prefs.Get(f.path)
		if v.Type == gjson.True || v.Type == gjson.False {
			*f.dst = v.Bool()
			continue
		}
		recovered = append(recovered, "user.preferences."+f.path)
	}

	stats := root.Get("user.stats")
	intFields := []struct {
		path string
		dst  *int
	}{
		{"dragonsViewed", &out.User.Stats.DragonsViewed},
		{"timeSpent", &out.User.Stats.TimeSpent},
	}
	for _, f := range intFields {
		if n, ok := counter(stats.Get(f.path)); ok {
			*f.dst = n
			continue
		}
		recovered = append(recovered, "user.stats."+f.path)
	}

	out.User.Stats.FavoriteCount = len(out.Favorites)
	return out, recovered
}

func themeField(v gjson.Result) (string, bool) {
	if v.Type != gjson.String {
		return "", false
	}
	if !state.Theme(v.Str).Valid() {
		return "", false
	}
	return v.Str, true
}

func stringSet(v gjson.Result) ([]string, bool) {
	if !v.IsArray() {
		return nil, false
	}
	values := v.Array()
	ids := make([]string, 0, len(values))
	for _, el := range values {
		if el.Type != gjson.String {
			return nil, false
		}
		ids = append(ids, el.Str)
	}
	out := favorites.FromIDs(ids).IDs()
	if out == nil {
		out = []string{}
	}
	return out, true
}

// maxCounter is the largest integer a JSON number holds exactly.
const maxCounter = 1 << 53

func counter(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	if v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > maxCounter {
		return 0, false
	}
	return int(v.Int()), true
}
