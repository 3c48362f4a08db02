package util

import (
	"errors"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  job description.docx ", want: "job description.docx"},
		{in: "dir/sub\\cv.txt", want: "dir_sub_cv.txt"},
		{in: "tab\tname.txt", want: "tabname.txt"},
		{in: "../etc/passwd", err: true},
		{in: "   ", err: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := SanitizeFileName(tc.in)
			if tc.err {
				if !errors.Is(err, ErrInvalidFileName) {
					t.Fatalf("expected ErrInvalidFileName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
