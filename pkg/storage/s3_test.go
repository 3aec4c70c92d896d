package storage

import "testing"

func TestValidateImageType(t *testing.T) {
	cases := []struct {
		contentType, filename string
		want                  bool
	}{
		{"image/jpeg", "photo.jpg", true},
		{"image/png", "ref.png", true},
		{"", "ref.webp", true},
		{"", "REF.JPG", true},
		{"application/pdf", "plan.pdf", false},
		{"", "notes.txt", false},
		{"", "archive", false},
		{"video/mp4", "clip.mp4", false},
	}
	for _, tc := range cases {
		if got := ValidateImageType(tc.contentType, tc.filename); got != tc.want {
			t.Errorf("ValidateImageType(%q, %q) = %v, want %v", tc.contentType, tc.filename, got, tc.want)
		}
	}
}

func TestContentTypeForFilename(t *testing.T) {
	cases := []struct {
		filename, want string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.PNG", "image/png"},
		{"a.webp", "image/webp"},
		{"a.gif", "image/gif"},
		{"a.bin", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := ContentTypeForFilename(tc.filename); got != tc.want {
			t.Errorf("ContentTypeForFilename(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestObjectKeys(t *testing.T) {
	if got := ReferenceKey("shoot-1", "pose.jpg"); got != "references/shoot-1/pose.jpg" {
		t.Errorf("ReferenceKey = %q", got)
	}
	if got := CatalogKey("team-1", "tripod.png"); got != "catalog/team-1/tripod.png" {
		t.Errorf("CatalogKey = %q", got)
	}
	// Path components in the filename are stripped.
	if got := ReferenceKey("shoot-1", "../../etc/passwd"); got != "references/shoot-1/passwd" {
		t.Errorf("ReferenceKey with traversal = %q", got)
	}
}

func TestKeyFromObjectURL(t *testing.T) {
	s := &S3{cfg: S3Config{UploadsBucket: "shootdeck-uploads", Region: "eu-central-1"}}

	key, ok := s.KeyFromObjectURL("https://shootdeck-uploads.s3.eu-central-1.amazonaws.com/references/shoot-1/pose.jpg")
	if !ok || key != "references/shoot-1/pose.jpg" {
		t.Errorf("got (%q, %v)", key, ok)
	}

	for _, url := range []string{
		"https://other-bucket.s3.eu-central-1.amazonaws.com/references/x.jpg",
		"https://example.com/pose.jpg",
		"https://shootdeck-uploads.s3.eu-central-1.amazonaws.com/",
		"",
	} {
		if key, ok := s.KeyFromObjectURL(url); ok {
			t.Errorf("KeyFromObjectURL(%q) = (%q, true), want miss", url, key)
		}
	}
}
