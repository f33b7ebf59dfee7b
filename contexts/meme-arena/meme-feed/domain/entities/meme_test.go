package entities

import "testing"

func TestCleanHandle(t *testing.T) {
	cases := map[string]string{
		"@Alice":   "alice",
		"@@bob":    "bob",
		" charlie": "charlie",
		"D_9":      "d_9",
	}
	for raw, want := range cases {
		if got := CleanHandle(raw); got != want {
			t.Fatalf("CleanHandle(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestIsValidHandle(t *testing.T) {
	for _, handle := range []string{"abc", "meme_lord", "x_9yz"} {
		if !IsValidHandle(handle) {
			t.Fatalf("expected %q valid", handle)
		}
	}
	for _, handle := range []string{"", "ab", "has space", "Upper", "dash-ed", "waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay_too_long"} {
		if IsValidHandle(handle) {
			t.Fatalf("expected %q invalid", handle)
		}
	}
}

func TestNormalizeImgURLStripsSignedQueryForImages(t *testing.T) {
	got := NormalizeImgURL("https://cdn.example/pics/a.PNG?X-Sig=abc#frag")
	if got != "https://cdn.example/pics/a.PNG" {
		t.Fatalf("unexpected normalization: %s", got)
	}
}

func TestNormalizeImgURLKeepsQueryForNonImagePaths(t *testing.T) {
	got := NormalizeImgURL("https://cdn.example/render?id=42#frag")
	if got != "https://cdn.example/render?id=42" {
		t.Fatalf("unexpected normalization: %s", got)
	}
}

func TestNormalizeImgURLPassesThroughUnparseable(t *testing.T) {
	if got := NormalizeImgURL("  not a url  "); got != "not a url" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestIsAllowedReaction(t *testing.T) {
	for _, key := range []string{ReactionLike, ReactionLove, ReactionLOL, ReactionFire, ReactionWow} {
		if !IsAllowedReaction(key) {
			t.Fatalf("expected %q allowed", key)
		}
	}
	for _, key := range []string{"", "dislike", "LIKE"} {
		if IsAllowedReaction(key) {
			t.Fatalf("expected %q rejected", key)
		}
	}
}
