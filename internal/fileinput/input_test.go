package fileinput_test

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/stackgolf/internal/fileinput"
)

func TestInput(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{
		fileinput.Named("a", strings.NewReader("1\n\n2\r\n")),
		strings.NewReader(""),
		fileinput.Named("b", strings.NewReader("3")),
	}}

	type line struct {
		text string
		loc  string
	}
	var got []line
	for {
		text, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, line{text, in.Loc.String()})
	}
	assert.Equal(t, []line{
		{"1", "a:1"},
		{"", "a:2"},
		{"2", "a:3"},
		{"3", "b:1"},
	}, got)

	_, err := in.ReadLine()
	assert.Equal(t, io.EOF, err, "expected exhausted input to stay exhausted")
}

func TestInput_sharedBuffer(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("cmd\ndata\nnext\n"))
	in := fileinput.Input{Queue: []io.Reader{fileinput.Named("<stdin>", br)}}

	line, err := in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "cmd", line)

	data, err := br.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "data\n", data, "expected other readers to share the buffer")

	line, err = in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "next", line)
	assert.Equal(t, "<stdin>:2", in.Loc.String())
}
