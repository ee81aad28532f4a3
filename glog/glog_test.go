// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintfAndErrorfWriteRankPrefixedLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, 3, false)
	l.Printf("hello %d", 7)
	l.Errorf("trouble %s", "here")

	out := buf.String()
	require.True(t, strings.Contains(out, "[rank 3] info: hello 7"))
	require.True(t, strings.Contains(out, "[rank 3] error: trouble here"))
}

func TestDebugfGatedByVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, 0, false)
	quiet.Debugf("should not appear")
	require.Equal(t, "", buf.String())

	buf.Reset()
	loud := New(&buf, 0, true)
	loud.Debugf("should appear")
	require.Contains(t, buf.String(), "should appear")
}

func TestNilLoggerDiscardsSilently(t *testing.T) {
	var l *Logger
	require.NotPanics(t, func() {
		l.Printf("x")
		l.Errorf("y")
		l.Debugf("z")
		require.False(t, l.LogErr(nil, "msg"))
	})
}

func TestLogErrReportsStopFlag(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, 0, false)
	require.False(t, l.LogErr(nil, "no problem"))
	require.True(t, l.LogErr(errors.New("boom"), "while doing thing"))
	require.Contains(t, buf.String(), "while doing thing: boom")
}
