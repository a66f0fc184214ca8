package x11

import "testing"

func TestParseWMClass(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "instance and class",
			data: []byte("navigator\x00Firefox\x00"),
			want: "Firefox",
		},
		{
			name: "instance only",
			data: []byte("xterm\x00"),
			want: "xterm",
		},
		{
			name: "empty class falls back to instance",
			data: []byte("code\x00\x00"),
			want: "code",
		},
		{
			name: "empty",
			data: []byte{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseWMClass(tt.data); got != tt.want {
				t.Errorf("parseWMClass(%q) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestAppNameFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Inbox - user@example.com - Mozilla Thunderbird", want: "Mozilla Thunderbird"},
		{title: "main.go - Visual Studio Code", want: "Visual Studio Code"},
		{title: "Terminal", want: "Terminal"},
		{title: "", want: ""},
	}

	for _, tt := range tests {
		if got := appNameFromTitle(tt.title); got != tt.want {
			t.Errorf("appNameFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
