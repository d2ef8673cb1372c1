package placeholder

import "testing"

func TestMedia(t *testing.T) {
	tests := map[string]string{
		"photo": Image,
		"video": Video,
		"audio": Audio,
		"":      Image,
	}
	for kind, want := range tests {
		if got := Media(kind); got != want {
			t.Errorf("Media(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestAvatar(t *testing.T) {
	tests := []struct {
		name string
		size int
		want string
	}{
		{"mary", AvatarSmall, "https://placehold.co/40x40.png?text=M"},
		{"  Émile", AvatarLarge, "https://placehold.co/128x128.png?text=%C3%89"},
		{"", AvatarSmall, "https://placehold.co/40x40.png?text=%3F"},
	}
	for _, tt := range tests {
		if got := Avatar(tt.name, tt.size); got != tt.want {
			t.Errorf("Avatar(%q, %d) = %q, want %q", tt.name, tt.size, got, tt.want)
		}
	}
}
