package ytref

import "testing"

func TestResolve(t *testing.T) {
	const id = "dQw4w9WgXcQ"
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=" + id, id},
		{"watch param order", "https://www.youtube.com/watch?feature=share&list=PL9&v=" + id + "&t=30s", id},
		{"param ending in v", "https://www.youtube.com/watch?nav=abcdefghijk&v=" + id, id},
		{"param ending in v after v", "https://www.youtube.com/watch?v=" + id + "&lv=abcdefghijk", id},
		{"mobile", "https://m.youtube.com/watch?v=" + id, id},
		{"short link", "https://youtu.be/" + id, id},
		{"short link query", "https://youtu.be/" + id + "?si=abcdef", id},
		{"embed", "https://www.youtube.com/embed/" + id, id},
		{"embed trailing path", "https://www.youtube.com/embed/" + id + "/extra", id},
		{"versioned path", "https://www.youtube.com/v/" + id + "?version=3", id},
		{"shorts", "https://www.youtube.com/shorts/" + id, id},
		{"fragment", "https://www.youtube.com/watch?v=" + id + "#comments", id},
		{"player embedded", "https://www.youtube.com/watch?feature=player_embedded&v=" + id, id},
		{"percent encoded", "https://www.youtube.com/attribution_link?u=/watch?v%3D" + id, id},
		{"no scheme", "youtube.com/watch?v=" + id, id},
		{"bare id", id, id},
		{"bare id padded", "  " + id + "\n", id},
		{"too short", "https://youtu.be/dQw4w9WgXc", ""},
		{"too long", "https://youtu.be/dQw4w9WgXcQQ", ""},
		{"bad alphabet", "https://www.youtube.com/watch?v=123$%^&*()", ""},
		{"bare with junk", "dQw4w9WgXcQ!", ""},
		{"empty", "", ""},
		{"malformed escape", "https://www.youtube.com/watch?v=%zz%zz", ""},
		{"other host text", "https://example.com/page", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := Resolve(tt.raw)
			if ref.ID != tt.want {
				t.Errorf("Resolve(%q).ID = %q, want %q", tt.raw, ref.ID, tt.want)
			}
			if ref.Raw != tt.raw {
				t.Errorf("Resolve(%q).Raw = %q, raw input must be kept", tt.raw, ref.Raw)
			}
			if ref.HasID() != (tt.want != "") {
				t.Errorf("HasID() = %v", ref.HasID())
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	first := Resolve("https://youtu.be/a1B2c3D4e_-")
	second := Resolve(first.ID)
	if second.ID != first.ID {
		t.Errorf("re-resolving %q gave %q", first.ID, second.ID)
	}
}

func TestWatchURL(t *testing.T) {
	ref := Resolve("dQw4w9WgXcQ")
	if got := ref.WatchURL(); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL() = %q", got)
	}
	if got := Resolve("nope").WatchURL(); got != "" {
		t.Errorf("unresolved WatchURL() = %q, want empty", got)
	}
}
