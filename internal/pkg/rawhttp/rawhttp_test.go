package rawhttp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Response
	}{
		{
			name: "status headers and body",
			raw:  "HTTP/1.1 200 OK\r\nContent-Type: text/html; charset=utf-8\r\nX-Empty:\r\n\r\n<html></html>",
			want: Response{
				StatusCode: 200,
				Headers:    map[string]string{"Content-Type": "text/html; charset=utf-8", "X-Empty": ""},
				Body:       "<html></html>",
			},
		},
		{
			name: "lowercase prefix and http/2 status line without reason",
			raw:  "http/2 302\r\nLocation: /login\r\n\r\n",
			want: Response{StatusCode: 302, Headers: map[string]string{"Location": "/login"}},
		},
		{
			name: "last header value wins and keys keep their case",
			raw:  "HTTP/1.1 200 OK\r\nSet-Cookie: a=1\r\nset-cookie: b=2\r\nSet-Cookie:  c=3 \r\n\r\nbody",
			want: Response{
				StatusCode: 200,
				Headers:    map[string]string{"Set-Cookie": "c=3", "set-cookie": "b=2"},
				Body:       "body",
			},
		},
		{
			name: "header value containing colons",
			raw:  "HTTP/1.1 200 OK\r\nDate: Fri, 18 Jul 2014 21:30:00 GMT\r\n\r\n",
			want: Response{StatusCode: 200, Headers: map[string]string{"Date": "Fri, 18 Jul 2014 21:30:00 GMT"}},
		},
		{
			name: "lines without colon are ignored",
			raw:  "HTTP/1.1 404 Not Found\r\ngarbage line\r\nServer: nginx\r\n\r\nmissing",
			want: Response{StatusCode: 404, Headers: map[string]string{"Server": "nginx"}, Body: "missing"},
		},
		{
			name: "missing status line",
			raw:  "Server: nginx\r\n\r\nbody",
			want: Response{StatusCode: StatusUnknown, Headers: map[string]string{"Server": "nginx"}, Body: "body"},
		},
		{
			name: "non-numeric status",
			raw:  "HTTP/1.1 OK\r\n\r\nbody",
			want: Response{StatusCode: StatusUnknown, Headers: map[string]string{}, Body: "body"},
		},
		{
			name: "body keeps embedded blank lines",
			raw:  "HTTP/1.1 200 OK\r\n\r\npart one\r\n\r\npart two\r\n\r\n",
			want: Response{StatusCode: 200, Headers: map[string]string{}, Body: "part one\r\n\r\npart two\r\n\r\n"},
		},
		{
			name: "no blank line means no body",
			raw:  "HTTP/1.1 204 No Content\r\nServer: nginx",
			want: Response{StatusCode: 204, Headers: map[string]string{"Server": "nginx"}},
		},
		{
			name: "empty input",
			raw:  "",
			want: Response{StatusCode: StatusUnknown, Headers: map[string]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Decode(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_BodyBoundary(t *testing.T) {
	t.Parallel()

	statusLine := "HTTP/1.1 200 OK"
	bodies := []string{
		"",
		"plain",
		"\r\n",
		"\r\n\r",
		"line one\r\nline two\n\nline three",
		"18-7-2014 21:30|X/Zaal 9|Movie A\r\n",
		"  leading and trailing  ",
	}

	for _, body := range bodies {
		if got := Decode(statusLine + "\r\n\r\n" + body).Body; got != body {
			t.Errorf("Decode() body = %q, want %q", got, body)
		}
	}
}
