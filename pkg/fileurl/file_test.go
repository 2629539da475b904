package fileurl

import (
	"strings"
	"testing"
)

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "logo.png", "logo.png"},
		{"unix path stripped", "/etc/passwd", "passwd"},
		{"relative path stripped", "../../x.png", "x.png"},
		{"windows path stripped", `c:\images\shop.png`, "shop.png"},
		{"dot only", ".", ""},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SafeFileName(c.in)
			if c.want == "" {
				// 空名回退为随机名，只要求无路径分隔符且非空
				if got == "" || strings.ContainsAny(got, `/\`) {
					t.Errorf("SafeFileName(%q) = %q, want random name without separators", c.in, got)
				}
				return
			}
			if got != c.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestPathSuffixCheckAdd(t *testing.T) {
	if got := PathSuffixCheckAdd("storage/uploads", "/"); got != "storage/uploads/" {
		t.Errorf("got %q", got)
	}
	if got := PathSuffixCheckAdd("storage/uploads/", "/"); got != "storage/uploads/" {
		t.Errorf("got %q", got)
	}
}

func TestIsContainExt(t *testing.T) {
	exts := []string{".jpg", ".png", ".gif", ".svg", ".webp"}
	if !IsContainExt(ImageType, "logo.PNG", exts) {
		t.Error("expected .PNG to be allowed")
	}
	if IsContainExt(ImageType, "logo.exe", exts) {
		t.Error("expected .exe to be rejected")
	}
}
