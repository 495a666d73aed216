package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.bbc.com/news/x", "https://www.bbc.com/news/x"},
		{"http://reuters.com/a", "http://reuters.com/a"},
		{"HTTPS://CNN.com/a", "HTTPS://CNN.com/a"},
		{"example-blog.test/post", "https://example-blog.test/post"},
		{"  www.npr.org/story  ", "https://www.npr.org/story"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.bbc.com/news/x", "bbc.com"},
		{"https://edition.CNN.com:443/2024/story", "edition.cnn.com"},
		{"https://example-blog.test/post", "example-blog.test"},
		{"https://nytimes.com./x", "nytimes.com"},
		{"not a url", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Domain(tt.input))
		})
	}
}

func TestCheckerRecognized(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		host string
		want bool
	}{
		{"bbc.com", true},
		{"www.bbc.com", true},
		{"news.bbc.co.uk", true},
		{"edition.cnn.com", true},
		{"abcnews.go.com", true},
		{"go.com", false},
		{"notbbc.com", false},
		{"bbc.com.evil.test", false},
		{"example-blog.test", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Recognized(tt.host))
		})
	}
}

func TestCheckerExtraDomains(t *testing.T) {
	c := NewChecker("www.Example-Blog.test", "co.uk", " ")

	assert.True(t, c.Recognized("example-blog.test"))
	assert.True(t, c.Recognized("sub.example-blog.test"))
	// a public suffix on the list must not match every site under it
	assert.False(t, c.Recognized("someblog.co.uk"))
}

func TestCheck(t *testing.T) {
	c := NewChecker()

	require.NoError(t, c.Check("https://www.bbc.com/news/x"))

	err := c.Check(Normalize("example-blog.test/post"))
	require.Error(t, err)

	var unrec *UnrecognizedSourceError
	require.True(t, errors.As(err, &unrec))
	assert.Equal(t, "example-blog.test", unrec.Domain)
	assert.Equal(t, "unrecognized news source: example-blog.test", err.Error())
}

func TestExampleURLsAreRecognized(t *testing.T) {
	c := NewChecker()
	for _, u := range ExampleURLs {
		assert.NoError(t, c.Check(u), u)
	}
}
