// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Logger_New(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetFormat(FormatPlain), AddContext("pkg", "parent"))
	child := parent.New(SetLevel(Warn), AddContext("core", "3"))

	assert.Equal(t, Info, *parent.settings.level)
	assert.Equal(t, Warn, *child.settings.level)
	assert.Equal(t, FormatPlain, *child.settings.format)
	assert.Equal(t, []contextKeyValues{
		{key: "pkg", values: []string{"parent"}},
		{key: "core", values: []string{"3"}},
	}, child.settings.context)
	assert.Equal(t, []contextKeyValues{
		{key: "pkg", values: []string{"parent"}},
	}, parent.settings.context)

	child.Info("dropped")
	assert.Empty(t, buffer.String())
	child.Warn("kept")
	assert.Contains(t, buffer.String(), "kept\tpkg=parent core=3\n")
}

func Test_Logger_Patch(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	parent := New(SetWriter(buffer), SetFormat(FormatPlain))
	child := parent.New()
	grandChild := child.New(SetLevel(Error))

	parent.PatchLevel(Debug)

	assert.Equal(t, Debug, *parent.settings.level)
	assert.Equal(t, Debug, *child.settings.level)
	assert.Equal(t, Debug, *grandChild.settings.level)

	newBuffer := bytes.NewBuffer(nil)
	parent.Patch(SetWriter(newBuffer), AddContext("run", "1"))
	grandChild.Debug("patched")

	assert.Empty(t, buffer.String())
	assert.Contains(t, newBuffer.String(), "DEBUG    patched\trun=1\n")
}
