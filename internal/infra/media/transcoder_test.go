package media

import "testing"

func TestNewFFmpegTranscoder_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := NewFFmpegTranscoder("definitely-not-a-real-binary"); err == nil {
		t.Fatal("expected error for missing executable")
	}
}
