// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package goeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/internal/interp"
)

func bindings(set interp.ImportSet) map[interp.Binding]bool {
	out := make(map[interp.Binding]bool, set.Len())
	for _, b := range set.Bindings() {
		out[b] = true
	}
	return out
}

func TestScanExports_Declarations(t *testing.T) {
	src := `var x = 1
const y = 2

type Point struct{ X, Y float64 }

func dist(a, b Point) float64 { return 0 }`

	set, err := scanExports("demo", src)
	require.NoError(t, err)
	got := bindings(set)
	assert.True(t, got[interp.Binding{Kind: interp.ValueBinding, Name: "x"}])
	assert.True(t, got[interp.Binding{Kind: interp.ValueBinding, Name: "y"}])
	assert.True(t, got[interp.Binding{Kind: interp.TypeBinding, Name: "Point"}])
	assert.True(t, got[interp.Binding{Kind: interp.ValueBinding, Name: "dist"}])
	assert.Equal(t, 4, set.Len())
}

func TestScanExports_StatementSnippet(t *testing.T) {
	src := `x := 1
y, _ := 2, 3
fmt.Println(x + y)`

	set, err := scanExports("demo", src)
	require.NoError(t, err)
	got := bindings(set)
	assert.True(t, got[interp.Binding{Kind: interp.ValueBinding, Name: "x"}])
	assert.True(t, got[interp.Binding{Kind: interp.ValueBinding, Name: "y"}])
	assert.Equal(t, 2, set.Len())
}

func TestScanExports_ImportsBeforeStatements(t *testing.T) {
	src := `import "fmt"
import m "math"
v := m.Sqrt(2)
fmt.Println(v)`

	set, err := scanExports("demo", src)
	require.NoError(t, err)
	got := bindings(set)
	assert.True(t, got[interp.Binding{Kind: interp.PackageBinding, Name: "fmt"}])
	assert.True(t, got[interp.Binding{Kind: interp.PackageBinding, Name: "m"}])
	assert.True(t, got[interp.Binding{Kind: interp.ValueBinding, Name: "v"}])
}

func TestScanExports_ImportBlock(t *testing.T) {
	src := `import (
	"fmt"
	"strings"
)
s := strings.ToUpper("hi")
fmt.Println(s)`

	set, err := scanExports("demo", src)
	require.NoError(t, err)
	got := bindings(set)
	assert.True(t, got[interp.Binding{Kind: interp.PackageBinding, Name: "fmt"}])
	assert.True(t, got[interp.Binding{Kind: interp.PackageBinding, Name: "strings"}])
}

func TestScanExports_BlankIdentifiersIgnored(t *testing.T) {
	src := `_, x := 1, 2`
	set, err := scanExports("demo", src)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	assert.True(t, set.ContainsName("x"))
}

func TestScanExports_SyntaxError(t *testing.T) {
	_, err := scanExports("demo", "func (")
	require.Error(t, err)
}

func TestBlankSource(t *testing.T) {
	assert.True(t, blankSource(""))
	assert.True(t, blankSource("\n\t  \n"))
	assert.True(t, blankSource("// just a comment\n// another"))
	assert.False(t, blankSource("x := 1"))
}
