package filename

import "testing"

func TestSecure(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{`C:\Users\me\notes.txt`, "C_Users_me_notes.txt"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"résumé.docx", "resume.docx"},
		{"..hidden", "hidden"},
		{"__init__.py", "init__.py"},
		{"a;b&c|d.sh", "abcd.sh"},
		{"日本語", ""},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Secure(tt.in); got != tt.want {
				t.Errorf("Secure(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
