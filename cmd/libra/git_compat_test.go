package main

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitCompat_HashObject(t *testing.T) {
	gitBin, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not installed")
	}

	th := NewTestHelper(t)
	files := map[string]string{
		"empty.txt":   "",
		"hello.txt":   "hello\n",
		"binary.bin":  "\x00\x01\x02\xff",
		"unicode.txt": "héllo wörld\n",
		"crlf.txt":    "line one\r\nline two\r\n",
	}

	for name, content := range files {
		path := th.WriteFile(name, content)

		cmd := exec.Command(gitBin, "hash-object", "--no-filters", path)
		want, err := cmd.Output()
		require.NoError(t, err, "git hash-object %s", name)

		got := th.MustRun("hash-object", name)
		assert.Equal(t, strings.TrimSpace(string(want)), strings.TrimSpace(got), name)
	}
}
